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

// Package employee implements the employee record aggregate: a profile with
// owned address and contact collections and an employment status machine.
package employee

import (
	"time"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/money"
)

// Kind is the aggregate kind hosted by this package.
const Kind = "employee"

// Status is the employment state.
type Status string

const (
	StatusActive     Status = "Active"
	StatusSuspended  Status = "Suspended"
	StatusTerminated Status = "Terminated"
)

// Address is an owned postal address.
type Address struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Contact is an owned contact channel such as a phone number or email.
type Contact struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Value   string `json:"value"`
}

// State is the persisted employee record.
type State struct {
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Status     Status    `json:"status"`
	HiredAt    time.Time `json:"hiredAt,omitzero"`

	Compensation money.Money `json:"compensation"`

	Addresses []Address `json:"addresses"`
	Contacts  []Contact `json:"contacts"`

	SuspendReason string    `json:"suspendReason,omitempty"`
	TerminatedAt  time.Time `json:"terminatedAt,omitzero"`
}

var _ aggregate.State = (*State)(nil)

// Kind returns the aggregate kind.
func (s *State) Kind() string { return Kind }

// Clone returns a deep copy.
func (s *State) Clone() aggregate.State {
	clone := *s
	clone.Addresses = make([]Address, len(s.Addresses))
	copy(clone.Addresses, s.Addresses)
	clone.Contacts = make([]Contact, len(s.Contacts))
	copy(clone.Contacts, s.Contacts)
	return &clone
}

func (s *State) created() bool {
	return s.Status != ""
}

func (s *State) address(id string) int {
	for i := range s.Addresses {
		if s.Addresses[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) contact(id string) int {
	for i := range s.Contacts {
		if s.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}
