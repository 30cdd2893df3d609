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
	"context"
	"time"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/errors"
)

// Behavior is the employee record state machine.
type Behavior struct{}

var _ aggregate.Behavior = (*Behavior)(nil)

// NewBehavior creates the employee behavior.
func NewBehavior() *Behavior { return &Behavior{} }

// Kind returns the aggregate kind.
func (Behavior) Kind() string { return Kind }

// NewState returns a zero state for snapshot decoding.
func (Behavior) NewState() aggregate.State { return new(State) }

// Handle executes one command against the working copy.
func (b Behavior) Handle(_ context.Context, state aggregate.State, cmd aggregate.Command) (*aggregate.Effect, error) {
	record := state.(*State)

	switch cmd := cmd.(type) {
	case Hire:
		return b.hire(record, cmd)
	case ChangeTitle:
		return b.changeTitle(record, cmd)
	case AdjustCompensation:
		return b.adjustCompensation(record, cmd)
	case AddAddress:
		return b.addAddress(record, cmd)
	case RemoveAddress:
		return b.removeAddress(record, cmd)
	case AddContact:
		return b.addContact(record, cmd)
	case RemoveContact:
		return b.removeContact(record, cmd)
	case Suspend:
		return b.suspend(record, cmd)
	case Reinstate:
		return b.reinstate(record)
	case Terminate:
		return b.terminate(record)
	case Get:
		return aggregate.NewEffect(record).WithResponse(record.Clone()), nil
	default:
		return nil, errors.Reject(errors.CodeInvalidArgument,
			"employee does not understand %s", cmd.CommandName())
	}
}

// requireActive guards every profile mutation: addresses, contacts, title
// and compensation can only change while the employee is Active.
func requireActive(record *State) error {
	if record.Status != StatusActive {
		return errors.Reject(errors.CodeInvalidTransition,
			"employee %s is %s, profile is read-only", record.EmployeeID, record.Status)
	}
	return nil
}

func (Behavior) hire(record *State, cmd Hire) (*aggregate.Effect, error) {
	if record.created() {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"employee %s already exists", record.EmployeeID)
	}
	if cmd.EmployeeID == "" || cmd.Name == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "employee id and name are required")
	}
	if cmd.Compensation.Currency == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "compensation currency is required")
	}
	if cmd.Compensation.IsNegative() {
		return nil, errors.Reject(errors.CodeInvalidArgument, "compensation cannot be negative")
	}

	record.EmployeeID = cmd.EmployeeID
	record.Name = cmd.Name
	record.Title = cmd.Title
	record.Compensation = cmd.Compensation
	record.Status = StatusActive
	record.HiredAt = time.Now().UTC()

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.hired", map[string]string{"employeeId": cmd.EmployeeID, "name": cmd.Name}), nil
}

func (Behavior) changeTitle(record *State, cmd ChangeTitle) (*aggregate.Effect, error) {
	if err := requireActive(record); err != nil {
		return nil, err
	}
	if cmd.Title == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "title is required")
	}

	record.Title = cmd.Title
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.title_changed", map[string]string{"title": cmd.Title}), nil
}

func (Behavior) adjustCompensation(record *State, cmd AdjustCompensation) (*aggregate.Effect, error) {
	if err := requireActive(record); err != nil {
		return nil, err
	}
	if cmd.Compensation.IsNegative() {
		return nil, errors.Reject(errors.CodeInvalidArgument, "compensation cannot be negative")
	}
	if cmd.Compensation.Currency != record.Compensation.Currency {
		return nil, errors.Reject(errors.CodeCurrencyMismatch,
			"compensation is %s, got %s", record.Compensation.Currency, cmd.Compensation.Currency)
	}

	record.Compensation = cmd.Compensation
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.compensation_adjusted", nil), nil
}

func (Behavior) addAddress(record *State, cmd AddAddress) (*aggregate.Effect, error) {
	if err := requireActive(record); err != nil {
		return nil, err
	}
	if cmd.AddressID == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "address id is required")
	}
	if record.address(cmd.AddressID) >= 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "address %s already exists", cmd.AddressID)
	}

	record.Addresses = append(record.Addresses, Address{
		ID:      cmd.AddressID,
		Label:   cmd.Label,
		Street:  cmd.Street,
		City:    cmd.City,
		Country: cmd.Country,
	})
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.address_added", map[string]string{"addressId": cmd.AddressID}), nil
}

func (Behavior) removeAddress(record *State, cmd RemoveAddress) (*aggregate.Effect, error) {
	if err := requireActive(record); err != nil {
		return nil, err
	}
	index := record.address(cmd.AddressID)
	if index < 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "address %s does not exist", cmd.AddressID)
	}

	record.Addresses = append(record.Addresses[:index], record.Addresses[index+1:]...)
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.address_removed", map[string]string{"addressId": cmd.AddressID}), nil
}

func (Behavior) addContact(record *State, cmd AddContact) (*aggregate.Effect, error) {
	if err := requireActive(record); err != nil {
		return nil, err
	}
	if cmd.ContactID == "" || cmd.Value == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "contact id and value are required")
	}
	if record.contact(cmd.ContactID) >= 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "contact %s already exists", cmd.ContactID)
	}

	record.Contacts = append(record.Contacts, Contact{
		ID:      cmd.ContactID,
		Channel: cmd.Channel,
		Value:   cmd.Value,
	})
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.contact_added", map[string]string{"contactId": cmd.ContactID}), nil
}

func (Behavior) removeContact(record *State, cmd RemoveContact) (*aggregate.Effect, error) {
	if err := requireActive(record); err != nil {
		return nil, err
	}
	index := record.contact(cmd.ContactID)
	if index < 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "contact %s does not exist", cmd.ContactID)
	}

	record.Contacts = append(record.Contacts[:index], record.Contacts[index+1:]...)
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.contact_removed", map[string]string{"contactId": cmd.ContactID}), nil
}

func (Behavior) suspend(record *State, cmd Suspend) (*aggregate.Effect, error) {
	if record.Status != StatusActive {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot suspend an employee in status %s", record.Status)
	}

	record.Status = StatusSuspended
	record.SuspendReason = cmd.Reason

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.suspended", map[string]string{"reason": cmd.Reason}), nil
}

func (Behavior) reinstate(record *State) (*aggregate.Effect, error) {
	if record.Status != StatusSuspended {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot reinstate an employee in status %s", record.Status)
	}

	record.Status = StatusActive
	record.SuspendReason = ""

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.reinstated", nil), nil
}

func (Behavior) terminate(record *State) (*aggregate.Effect, error) {
	if record.Status == StatusTerminated {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"employee %s is already terminated", record.EmployeeID)
	}

	record.Status = StatusTerminated
	record.TerminatedAt = time.Now().UTC()

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("emp.terminated", nil), nil
}
