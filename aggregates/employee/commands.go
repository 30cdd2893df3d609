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

package employee

import (
	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/money"
)

// Hire creates the employee record. It is the only command that may
// activate an identity with no persisted state.
type Hire struct {
	EmployeeID   string
	Name         string
	Title        string
	Compensation money.Money
}

func (Hire) CommandName() string { return "Hire" }

// InitialState marks Hire as a creation command.
func (Hire) InitialState() aggregate.State { return new(State) }

var _ aggregate.CreationCommand = (*Hire)(nil)

// ChangeTitle updates the job title of an active employee.
type ChangeTitle struct {
	Title string
}

func (ChangeTitle) CommandName() string { return "ChangeTitle" }

// AdjustCompensation replaces the compensation amount. The new amount must
// be denominated in the employee's existing currency.
type AdjustCompensation struct {
	Compensation money.Money
}

func (AdjustCompensation) CommandName() string { return "AdjustCompensation" }

// AddAddress appends an owned address. Mutable only while Active.
type AddAddress struct {
	AddressID string
	Label     string
	Street    string
	City      string
	Country   string
}

func (AddAddress) CommandName() string { return "AddAddress" }

// RemoveAddress deletes an owned address by id.
type RemoveAddress struct {
	AddressID string
}

func (RemoveAddress) CommandName() string { return "RemoveAddress" }

// AddContact appends an owned contact channel. Mutable only while Active.
type AddContact struct {
	ContactID string
	Channel   string
	Value     string
}

func (AddContact) CommandName() string { return "AddContact" }

// RemoveContact deletes an owned contact by id.
type RemoveContact struct {
	ContactID string
}

func (RemoveContact) CommandName() string { return "RemoveContact" }

// Suspend moves an active employee to Suspended.
type Suspend struct {
	Reason string
}

func (Suspend) CommandName() string { return "Suspend" }

// Reinstate returns a suspended employee to Active.
type Reinstate struct{}

func (Reinstate) CommandName() string { return "Reinstate" }

// Terminate ends the employment. Terminated is terminal.
type Terminate struct{}

func (Terminate) CommandName() string { return "Terminate" }

// Get returns the current record without mutating it.
type Get struct{}

func (Get) CommandName() string { return "Get" }
