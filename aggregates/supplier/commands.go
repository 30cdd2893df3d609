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

package supplier

import (
	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/money"
)

// Register creates the supplier in Pending. It is the only command that
// may activate an identity with no persisted state.
type Register struct {
	SupplierID        string
	Name              string
	PreferredCurrency string
}

func (Register) CommandName() string { return "Register" }

// InitialState marks Register as a creation command.
func (Register) InitialState() aggregate.State { return new(State) }

var _ aggregate.CreationCommand = (*Register)(nil)

// Approve moves Pending to Approved.
type Approve struct {
	By string
}

func (Approve) CommandName() string { return "Approve" }

// PlaceOnHold parks an approved supplier in OnHold.
type PlaceOnHold struct {
	Reason string
}

func (PlaceOnHold) CommandName() string { return "PlaceOnHold" }

// Release returns an on-hold supplier to Approved.
type Release struct{}

func (Release) CommandName() string { return "Release" }

// Blacklist terminates the supplier from any non-terminal state.
type Blacklist struct {
	By     string
	Reason string
}

func (Blacklist) CommandName() string { return "Blacklist" }

// AddContact appends an owned contact person.
type AddContact struct {
	ContactID string
	Name      string
	Email     string
	Phone     string
}

func (AddContact) CommandName() string { return "AddContact" }

// RemoveContact deletes an owned contact by id.
type RemoveContact struct {
	ContactID string
}

func (RemoveContact) CommandName() string { return "RemoveContact" }

// SetRate upserts the negotiated rate for one SKU. The rate must be
// denominated in the supplier's preferred currency.
type SetRate struct {
	SKU  string
	Rate money.Money
}

func (SetRate) CommandName() string { return "SetRate" }

// RemoveRate deletes the rate for one SKU.
type RemoveRate struct {
	SKU string
}

func (RemoveRate) CommandName() string { return "RemoveRate" }

// Get returns the current record without mutating it.
type Get struct{}

func (Get) CommandName() string { return "Get" }
