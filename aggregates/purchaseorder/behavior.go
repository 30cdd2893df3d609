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
	"context"
	"time"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/errors"
)

// Behavior is the purchase order state machine. One value serves every
// order; all per-order data lives in the State.
type Behavior struct{}

var _ aggregate.Behavior = (*Behavior)(nil)

// NewBehavior creates the purchase order behavior.
func NewBehavior() *Behavior { return &Behavior{} }

// Kind returns the aggregate kind.
func (Behavior) Kind() string { return Kind }

// NewState returns a zero state for snapshot decoding.
func (Behavior) NewState() aggregate.State { return new(State) }

// Handle executes one command against the working copy.
func (b Behavior) Handle(_ context.Context, state aggregate.State, cmd aggregate.Command) (*aggregate.Effect, error) {
	order := state.(*State)

	switch cmd := cmd.(type) {
	case CreateOrder:
		return b.create(order, cmd)
	case AddLine:
		return b.addLine(order, cmd)
	case UpdateLine:
		return b.updateLine(order, cmd)
	case RemoveLine:
		return b.removeLine(order, cmd)
	case SetDiscount:
		return b.setDiscount(order, cmd)
	case SetShipping:
		return b.setShipping(order, cmd)
	case Submit:
		return b.submit(order, cmd)
	case Approve:
		return b.approve(order, cmd)
	case Send:
		return b.send(order)
	case Acknowledge:
		return b.acknowledge(order)
	case Receive:
		return b.receive(order, cmd)
	case Cancel:
		return b.cancel(order, cmd)
	case Get:
		return aggregate.NewEffect(order).WithResponse(order.Clone()), nil
	default:
		return nil, errors.Reject(errors.CodeInvalidArgument,
			"purchase order does not understand %s", cmd.CommandName())
	}
}

func (Behavior) create(order *State, cmd CreateOrder) (*aggregate.Effect, error) {
	if order.created() {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"order %s already exists", order.OrderID)
	}
	if cmd.OrderID == "" || cmd.Currency == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "order id and currency are required")
	}

	order.OrderID = cmd.OrderID
	order.SupplierID = cmd.SupplierID
	order.Currency = cmd.Currency
	order.Status = StatusDraft
	order.recomputeTotals()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.created", map[string]string{
			"orderId":    cmd.OrderID,
			"supplierId": cmd.SupplierID,
			"currency":   cmd.Currency,
		}), nil
}

// requireDraft guards the line, discount and shipping mutations.
func requireDraft(order *State, verb string) error {
	if order.Status != StatusDraft {
		return errors.Reject(errors.CodeInvalidTransition,
			"cannot %s in status %s; lines are mutable only in Draft", verb, order.Status)
	}
	return nil
}

func (Behavior) addLine(order *State, cmd AddLine) (*aggregate.Effect, error) {
	if err := requireDraft(order, "add a line"); err != nil {
		return nil, err
	}
	if cmd.LineID == "" || cmd.Quantity <= 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument,
			"a line needs an id and a positive quantity")
	}
	if cmd.UnitPrice.IsNegative() {
		return nil, errors.Reject(errors.CodeInvalidArgument, "unit price cannot be negative")
	}
	if cmd.UnitPrice.Currency != order.Currency {
		return nil, errors.Reject(errors.CodeCurrencyMismatch,
			"line priced in %s cannot join a %s order", cmd.UnitPrice.Currency, order.Currency)
	}
	if order.line(cmd.LineID) != nil {
		return nil, errors.Reject(errors.CodeInvalidArgument, "line %s already exists", cmd.LineID)
	}

	order.Lines = append(order.Lines, Line{
		ID:          cmd.LineID,
		SKU:         cmd.SKU,
		Description: cmd.Description,
		Quantity:    cmd.Quantity,
		UnitPrice:   cmd.UnitPrice,
	})
	order.recomputeTotals()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.line_added", map[string]any{"lineId": cmd.LineID, "sku": cmd.SKU, "quantity": cmd.Quantity}), nil
}

func (Behavior) updateLine(order *State, cmd UpdateLine) (*aggregate.Effect, error) {
	if err := requireDraft(order, "update a line"); err != nil {
		return nil, err
	}
	if cmd.Quantity <= 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "quantity must be positive")
	}
	if cmd.UnitPrice.Currency != order.Currency {
		return nil, errors.Reject(errors.CodeCurrencyMismatch,
			"line priced in %s cannot join a %s order", cmd.UnitPrice.Currency, order.Currency)
	}
	line := order.line(cmd.LineID)
	if line == nil {
		return nil, errors.Reject(errors.CodeInvalidArgument, "line %s does not exist", cmd.LineID)
	}

	line.Quantity = cmd.Quantity
	line.UnitPrice = cmd.UnitPrice
	order.recomputeTotals()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.line_updated", map[string]any{"lineId": cmd.LineID, "quantity": cmd.Quantity}), nil
}

func (Behavior) removeLine(order *State, cmd RemoveLine) (*aggregate.Effect, error) {
	if err := requireDraft(order, "remove a line"); err != nil {
		return nil, err
	}
	for i := range order.Lines {
		if order.Lines[i].ID == cmd.LineID {
			order.Lines = append(order.Lines[:i], order.Lines[i+1:]...)
			order.recomputeTotals()
			return aggregate.NewEffect(order).
				WithResponse(order.Clone()).
				Emit("po.line_removed", map[string]string{"lineId": cmd.LineID}), nil
		}
	}
	return nil, errors.Reject(errors.CodeInvalidArgument, "line %s does not exist", cmd.LineID)
}

func (Behavior) setDiscount(order *State, cmd SetDiscount) (*aggregate.Effect, error) {
	if err := requireDraft(order, "set the discount"); err != nil {
		return nil, err
	}
	if cmd.Pct.IsNegative() || cmd.Pct.GreaterThan(one) {
		return nil, errors.Reject(errors.CodeInvalidArgument, "discount must be between 0 and 1")
	}

	order.DiscountPct = cmd.Pct
	order.recomputeTotals()
	return aggregate.NewEffect(order).WithResponse(order.Clone()), nil
}

func (Behavior) setShipping(order *State, cmd SetShipping) (*aggregate.Effect, error) {
	if err := requireDraft(order, "set the shipping cost"); err != nil {
		return nil, err
	}
	if cmd.Cost.IsNegative() {
		return nil, errors.Reject(errors.CodeInvalidArgument, "shipping cost cannot be negative")
	}
	if cmd.Cost.Currency != order.Currency {
		return nil, errors.Reject(errors.CodeCurrencyMismatch,
			"shipping priced in %s cannot join a %s order", cmd.Cost.Currency, order.Currency)
	}

	order.Shipping = cmd.Cost
	order.recomputeTotals()
	return aggregate.NewEffect(order).WithResponse(order.Clone()), nil
}

func (Behavior) submit(order *State, cmd Submit) (*aggregate.Effect, error) {
	if order.Status != StatusDraft {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot submit an order in status %s", order.Status)
	}
	if len(order.Lines) == 0 {
		return nil, errors.Reject(errors.CodeEmptyOrder, "an order needs at least one line to be submitted")
	}

	order.Status = StatusSubmitted
	order.SubmittedBy = cmd.By
	order.SubmittedAt = time.Now().UTC()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.submitted", map[string]string{"by": cmd.By}), nil
}

func (Behavior) approve(order *State, cmd Approve) (*aggregate.Effect, error) {
	if order.Status != StatusSubmitted {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot approve an order in status %s", order.Status)
	}

	order.Status = StatusApproved
	order.ApprovedBy = cmd.By
	order.ApprovedAt = time.Now().UTC()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.approved", map[string]string{"by": cmd.By}), nil
}

func (Behavior) send(order *State) (*aggregate.Effect, error) {
	if order.Status != StatusApproved {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot send an order in status %s", order.Status)
	}
	order.Status = StatusSent
	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.sent", nil), nil
}

func (Behavior) acknowledge(order *State) (*aggregate.Effect, error) {
	if order.Status != StatusSent {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot acknowledge an order in status %s", order.Status)
	}
	order.Status = StatusAcknowledged
	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.acknowledged", nil), nil
}

func (Behavior) receive(order *State, cmd Receive) (*aggregate.Effect, error) {
	// receipts against a cancelled or not-yet-acknowledged order are hard
	// failures, not no-ops
	if order.Status != StatusAcknowledged && order.Status != StatusPartiallyReceived {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot receive against an order in status %s", order.Status)
	}
	if len(cmd.Receipts) == 0 {
		return nil, errors.Reject(errors.CodeInvalidArgument, "a delivery needs at least one receipt")
	}

	for _, receipt := range cmd.Receipts {
		if receipt.Quantity <= 0 {
			return nil, errors.Reject(errors.CodeInvalidArgument,
				"received quantity for line %s must be positive", receipt.LineID)
		}
		line := order.line(receipt.LineID)
		if line == nil {
			return nil, errors.Reject(errors.CodeInvalidArgument,
				"line %s does not exist", receipt.LineID)
		}
		if line.Received+receipt.Quantity > line.Quantity {
			return nil, errors.Reject(errors.CodeInvalidArgument,
				"line %s would exceed its ordered quantity", receipt.LineID)
		}
		line.Received += receipt.Quantity
	}

	effect := aggregate.NewEffect(order).
		Emit("po.received", map[string]any{"receipts": len(cmd.Receipts)})

	// the order closes exactly once, on the delivery completing the last
	// line, no matter how many deliveries it took
	if order.fullyReceived() {
		order.Status = StatusClosed
		effect.Emit("po.closed", nil)
	} else {
		order.Status = StatusPartiallyReceived
	}

	return effect.WithResponse(order.Clone()), nil
}

func (Behavior) cancel(order *State, cmd Cancel) (*aggregate.Effect, error) {
	if order.Status.terminal() {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot cancel an order in status %s", order.Status)
	}

	order.Status = StatusCancelled
	order.CancelledBy = cmd.By
	order.CancelReason = cmd.Reason
	order.CancelledAt = time.Now().UTC()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("po.cancelled", map[string]string{"by": cmd.By, "reason": cmd.Reason}), nil
}
