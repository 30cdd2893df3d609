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

// Package purchaseorder implements the purchase order aggregate: a strict
// procurement lifecycle with owned line items, decimal money arithmetic and
// auto-close on full receipt.
package purchaseorder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/money"
)

// Kind is the aggregate kind hosted by this package.
const Kind = "purchaseorder"

// Status is the lifecycle state of a purchase order.
type Status string

const (
	StatusDraft             Status = "Draft"
	StatusSubmitted         Status = "Submitted"
	StatusApproved          Status = "Approved"
	StatusSent              Status = "Sent"
	StatusAcknowledged      Status = "Acknowledged"
	StatusPartiallyReceived Status = "PartiallyReceived"
	StatusClosed            Status = "Closed"
	StatusCancelled         Status = "Cancelled"
)

// terminal reports whether no further transition leaves the status.
func (s Status) terminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// taxRate is the fixed tax applied to the discounted subtotal.
var taxRate = decimal.RequireFromString("0.10")

var one = decimal.NewFromInt(1)

// Line is an owned order line. Lines exist only inside their order and are
// mutated exclusively through order commands.
type Line struct {
	ID          string      `json:"id"`
	SKU         string      `json:"sku"`
	Description string      `json:"description"`
	Quantity    int64       `json:"quantity"`
	UnitPrice   money.Money `json:"unitPrice"`
	Received    int64       `json:"received"`
}

// State is the persisted purchase order.
type State struct {
	OrderID     string          `json:"orderId"`
	SupplierID  string          `json:"supplierId"`
	Currency    string          `json:"currency"`
	Status      Status          `json:"status"`
	Lines       []Line          `json:"lines"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Shipping    money.Money     `json:"shipping"`

	Subtotal money.Money `json:"subtotal"`
	Discount money.Money `json:"discount"`
	Tax      money.Money `json:"tax"`
	Total    money.Money `json:"total"`

	SubmittedBy string    `json:"submittedBy,omitempty"`
	SubmittedAt time.Time `json:"submittedAt,omitzero"`
	ApprovedBy  string    `json:"approvedBy,omitempty"`
	ApprovedAt  time.Time `json:"approvedAt,omitzero"`

	CancelledBy  string    `json:"cancelledBy,omitempty"`
	CancelReason string    `json:"cancelReason,omitempty"`
	CancelledAt  time.Time `json:"cancelledAt,omitzero"`
}

var _ aggregate.State = (*State)(nil)

// Kind returns the aggregate kind.
func (s *State) Kind() string { return Kind }

// Clone returns a deep copy.
func (s *State) Clone() aggregate.State {
	clone := *s
	clone.Lines = make([]Line, len(s.Lines))
	copy(clone.Lines, s.Lines)
	return &clone
}

// created reports whether the order exists yet; a fresh identity activates
// on a zero state.
func (s *State) created() bool {
	return s.Status != ""
}

func (s *State) line(id string) *Line {
	for i := range s.Lines {
		if s.Lines[i].ID == id {
			return &s.Lines[i]
		}
	}
	return nil
}

// recomputeTotals derives subtotal, discount, tax and total from the lines.
// Called after every line, discount or shipping mutation.
func (s *State) recomputeTotals() {
	subtotal := money.Zero(s.Currency)
	for _, line := range s.Lines {
		// same-currency is enforced when the line enters the order
		subtotal, _ = subtotal.Add(line.UnitPrice.MulInt(line.Quantity))
	}
	discount := subtotal.MulRate(s.DiscountPct)
	taxable, _ := subtotal.Sub(discount)
	tax := taxable.MulRate(taxRate)
	total, _ := taxable.Add(tax)
	if !s.Shipping.IsZero() {
		total, _ = total.Add(s.Shipping)
	}

	s.Subtotal = subtotal.Round(2)
	s.Discount = discount.Round(2)
	s.Tax = tax.Round(2)
	s.Total = total.Round(2)
}

// fullyReceived reports whether every line's received quantity covers the
// ordered quantity.
func (s *State) fullyReceived() bool {
	if len(s.Lines) == 0 {
		return false
	}
	for _, line := range s.Lines {
		if line.Received < line.Quantity {
			return false
		}
	}
	return true
}
