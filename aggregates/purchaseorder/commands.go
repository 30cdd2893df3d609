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

package purchaseorder

import (
	"github.com/shopspring/decimal"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/money"
)

// CreateOrder opens a new purchase order in Draft. It is the only command
// that may activate an identity with no persisted state.
type CreateOrder struct {
	OrderID    string
	SupplierID string
	Currency   string
}

func (CreateOrder) CommandName() string { return "CreateOrder" }

// InitialState marks CreateOrder as a creation command.
func (CreateOrder) InitialState() aggregate.State { return new(State) }

var _ aggregate.CreationCommand = (*CreateOrder)(nil)

// AddLine appends a line item. Valid only in Draft.
type AddLine struct {
	LineID      string
	SKU         string
	Description string
	Quantity    int64
	UnitPrice   money.Money
}

func (AddLine) CommandName() string { return "AddLine" }

// UpdateLine changes quantity and unit price of a line. Valid only in Draft.
type UpdateLine struct {
	LineID    string
	Quantity  int64
	UnitPrice money.Money
}

func (UpdateLine) CommandName() string { return "UpdateLine" }

// RemoveLine deletes a line. Valid only in Draft.
type RemoveLine struct {
	LineID string
}

func (RemoveLine) CommandName() string { return "RemoveLine" }

// SetDiscount sets the order-level discount percentage, e.g. 0.10 for 10%.
// Valid only in Draft.
type SetDiscount struct {
	Pct decimal.Decimal
}

func (SetDiscount) CommandName() string { return "SetDiscount" }

// SetShipping sets the shipping cost. Valid only in Draft.
type SetShipping struct {
	Cost money.Money
}

func (SetShipping) CommandName() string { return "SetShipping" }

// Submit moves Draft to Submitted. Requires at least one line.
type Submit struct {
	By string
}

func (Submit) CommandName() string { return "Submit" }

// Approve moves Submitted to Approved, recording the approver.
type Approve struct {
	By string
}

func (Approve) CommandName() string { return "Approve" }

// Send moves Approved to Sent.
type Send struct{}

func (Send) CommandName() string { return "Send" }

// Acknowledge moves Sent to Acknowledged.
type Acknowledge struct{}

func (Acknowledge) CommandName() string { return "Acknowledge" }

// Receipt records received quantity against one line.
type Receipt struct {
	LineID   string
	Quantity int64
}

// Receive records a delivery. Valid from Acknowledged and
// PartiallyReceived; the order auto-closes once every line is fully
// received.
type Receive struct {
	Receipts []Receipt
}

func (Receive) CommandName() string { return "Receive" }

// Cancel terminates the order from any non-terminal state.
type Cancel struct {
	By     string
	Reason string
}

func (Cancel) CommandName() string { return "Cancel" }

// Get returns the current order state without mutating it.
type Get struct{}

func (Get) CommandName() string { return "Get" }
