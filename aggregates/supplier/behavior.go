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
	"context"
	"time"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/money"
)

// Behavior is the supplier state machine.
type Behavior struct{}

var _ aggregate.Behavior = (*Behavior)(nil)

// NewBehavior creates the supplier behavior.
func NewBehavior() *Behavior { return &Behavior{} }

// Kind returns the aggregate kind.
func (Behavior) Kind() string { return Kind }

// NewState returns a zero state for snapshot decoding.
func (Behavior) NewState() aggregate.State { return new(State) }

// Handle executes one command against the working copy.
func (b Behavior) Handle(_ context.Context, state aggregate.State, cmd aggregate.Command) (*aggregate.Effect, error) {
	record := state.(*State)

	switch cmd := cmd.(type) {
	case Register:
		return b.register(record, cmd)
	case Approve:
		return b.approve(record, cmd)
	case PlaceOnHold:
		return b.placeOnHold(record, cmd)
	case Release:
		return b.release(record)
	case Blacklist:
		return b.blacklist(record, cmd)
	case AddContact:
		return b.addContact(record, cmd)
	case RemoveContact:
		return b.removeContact(record, cmd)
	case SetRate:
		return b.setRate(record, cmd)
	case RemoveRate:
		return b.removeRate(record, cmd)
	case Get:
		return aggregate.NewEffect(record).WithResponse(record.Clone()), nil
	default:
		return nil, errors.Reject(errors.CodeInvalidArgument,
			"supplier does not understand %s", cmd.CommandName())
	}
}

func requireNotBlacklisted(record *State) error {
	if record.Status == StatusBlacklisted {
		return errors.Reject(errors.CodeInvalidTransition,
			"supplier %s is blacklisted", record.SupplierID)
	}
	return nil
}

func (Behavior) register(record *State, cmd Register) (*aggregate.Effect, error) {
	if record.created() {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"supplier %s already exists", record.SupplierID)
	}
	if cmd.SupplierID == "" || cmd.Name == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "supplier id and name are required")
	}
	if cmd.PreferredCurrency == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "preferred currency is required")
	}

	record.SupplierID = cmd.SupplierID
	record.Name = cmd.Name
	record.PreferredCurrency = cmd.PreferredCurrency
	record.Status = StatusPending

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.registered", map[string]string{"supplierId": cmd.SupplierID, "name": cmd.Name}), nil
}

func (Behavior) approve(record *State, cmd Approve) (*aggregate.Effect, error) {
	if record.Status != StatusPending {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot approve a supplier in status %s", record.Status)
	}

	record.Status = StatusApproved
	record.ApprovedBy = cmd.By
	record.ApprovedAt = time.Now().UTC()

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.approved", map[string]string{"by": cmd.By}), nil
}

func (Behavior) placeOnHold(record *State, cmd PlaceOnHold) (*aggregate.Effect, error) {
	if record.Status != StatusApproved {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot hold a supplier in status %s", record.Status)
	}

	record.Status = StatusOnHold
	record.HoldReason = cmd.Reason

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.held", map[string]string{"reason": cmd.Reason}), nil
}

func (Behavior) release(record *State) (*aggregate.Effect, error) {
	if record.Status != StatusOnHold {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot release a supplier in status %s", record.Status)
	}

	record.Status = StatusApproved
	record.HoldReason = ""

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.released", nil), nil
}

func (Behavior) blacklist(record *State, cmd Blacklist) (*aggregate.Effect, error) {
	if err := requireNotBlacklisted(record); err != nil {
		return nil, err
	}

	record.Status = StatusBlacklisted
	record.BlacklistedBy = cmd.By
	record.BlacklistReason = cmd.Reason
	record.BlacklistedAt = time.Now().UTC()

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.blacklisted", map[string]string{"by": cmd.By, "reason": cmd.Reason}), nil
}

func (Behavior) addContact(record *State, cmd AddContact) (*aggregate.Effect, error) {
	if err := requireNotBlacklisted(record); err != nil {
		return nil, err
	}
	if cmd.ContactID == "" || cmd.Name == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "contact id and name are required")
	}
	if record.contact(cmd.ContactID) >= 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "contact %s already exists", cmd.ContactID)
	}

	record.Contacts = append(record.Contacts, Contact{
		ID:    cmd.ContactID,
		Name:  cmd.Name,
		Email: cmd.Email,
		Phone: cmd.Phone,
	})
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.contact_added", map[string]string{"contactId": cmd.ContactID}), nil
}

func (Behavior) removeContact(record *State, cmd RemoveContact) (*aggregate.Effect, error) {
	if err := requireNotBlacklisted(record); err != nil {
		return nil, err
	}
	index := record.contact(cmd.ContactID)
	if index < 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "contact %s does not exist", cmd.ContactID)
	}

	record.Contacts = append(record.Contacts[:index], record.Contacts[index+1:]...)
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.contact_removed", map[string]string{"contactId": cmd.ContactID}), nil
}

func (Behavior) setRate(record *State, cmd SetRate) (*aggregate.Effect, error) {
	if err := requireNotBlacklisted(record); err != nil {
		return nil, err
	}
	if cmd.SKU == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "sku is required")
	}
	if cmd.Rate.IsNegative() {
		return nil, errors.Reject(errors.CodeInvalidArgument, "rate cannot be negative")
	}
	if cmd.Rate.Currency != record.PreferredCurrency {
		return nil, errors.Reject(errors.CodeCurrencyMismatch,
			"supplier trades in %s, got %s", record.PreferredCurrency, cmd.Rate.Currency)
	}

	if record.Rates == nil {
		record.Rates = make(map[string]money.Money)
	}
	record.Rates[cmd.SKU] = cmd.Rate

	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.rate_set", map[string]string{"sku": cmd.SKU, "rate": cmd.Rate.String()}), nil
}

func (Behavior) removeRate(record *State, cmd RemoveRate) (*aggregate.Effect, error) {
	if err := requireNotBlacklisted(record); err != nil {
		return nil, err
	}
	if _, ok := record.Rates[cmd.SKU]; !ok {
		return nil, errors.Reject(errors.CodeInvalidArgument, "no rate for sku %s", cmd.SKU)
	}

	delete(record.Rates, cmd.SKU)
	return aggregate.NewEffect(record).
		WithResponse(record.Clone()).
		Emit("sup.rate_removed", map[string]string{"sku": cmd.SKU}), nil
}
