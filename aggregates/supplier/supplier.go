/*
 * MIT License
 *
 * Copyright (c) 2024-2026 Holon Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package supplier implements the supplier aggregate: a vetting lifecycle
// with owned contacts and a per-SKU rate card denominated in the supplier's
// preferred currency.
package supplier

import (
	"time"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/money"
)

// Kind is the aggregate kind hosted by this package.
const Kind = "supplier"

// Status is the vetting state of a supplier.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusApproved    Status = "Approved"
	StatusOnHold      Status = "OnHold"
	StatusBlacklisted Status = "Blacklisted"
)

// Contact is an owned contact person at the supplier.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// State is the persisted supplier record.
type State struct {
	SupplierID        string `json:"supplierId"`
	Name              string `json:"name"`
	PreferredCurrency string `json:"preferredCurrency"`
	Status            Status `json:"status"`

	Contacts []Contact              `json:"contacts"`
	Rates    map[string]money.Money `json:"rates"`

	ApprovedBy string    `json:"approvedBy,omitempty"`
	ApprovedAt time.Time `json:"approvedAt,omitzero"`

	HoldReason string `json:"holdReason,omitempty"`

	BlacklistedBy   string    `json:"blacklistedBy,omitempty"`
	BlacklistReason string    `json:"blacklistReason,omitempty"`
	BlacklistedAt   time.Time `json:"blacklistedAt,omitzero"`
}

var _ aggregate.State = (*State)(nil)

// Kind returns the aggregate kind.
func (s *State) Kind() string { return Kind }

// Clone returns a deep copy.
func (s *State) Clone() aggregate.State {
	clone := *s
	clone.Contacts = make([]Contact, len(s.Contacts))
	copy(clone.Contacts, s.Contacts)
	if s.Rates != nil {
		clone.Rates = make(map[string]money.Money, len(s.Rates))
		for sku, rate := range s.Rates {
			clone.Rates[sku] = rate
		}
	}
	return &clone
}

func (s *State) created() bool {
	return s.Status != ""
}

func (s *State) contact(id string) int {
	for i := range s.Contacts {
		if s.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}
