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

package workorder

import (
	"context"
	"time"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/errors"
)

// Behavior is the work order state machine.
type Behavior struct{}

var _ aggregate.Behavior = (*Behavior)(nil)

// NewBehavior creates the work order behavior.
func NewBehavior() *Behavior { return &Behavior{} }

// Kind returns the aggregate kind.
func (Behavior) Kind() string { return Kind }

// NewState returns a zero state for snapshot decoding.
func (Behavior) NewState() aggregate.State { return new(State) }

// Handle executes one command against the working copy.
func (b Behavior) Handle(_ context.Context, state aggregate.State, cmd aggregate.Command) (*aggregate.Effect, error) {
	order := state.(*State)

	switch cmd := cmd.(type) {
	case OpenWorkOrder:
		return b.open(order, cmd)
	case AddTask:
		return b.addTask(order, cmd)
	case Schedule:
		return b.schedule(order, cmd)
	case Start:
		return b.start(order)
	case Hold:
		return b.hold(order, cmd)
	case Resume:
		return b.resume(order)
	case CompleteTask:
		return b.completeTask(order, cmd)
	case Cancel:
		return b.cancel(order, cmd)
	case Get:
		return aggregate.NewEffect(order).WithResponse(order.Clone()), nil
	default:
		return nil, errors.Reject(errors.CodeInvalidArgument,
			"work order does not understand %s", cmd.CommandName())
	}
}

func (Behavior) open(order *State, cmd OpenWorkOrder) (*aggregate.Effect, error) {
	if order.created() {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"work order %s already exists", order.WorkOrderID)
	}
	if cmd.WorkOrderID == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "work order id is required")
	}

	order.WorkOrderID = cmd.WorkOrderID
	order.AssetID = cmd.AssetID
	order.Summary = cmd.Summary
	order.Status = StatusOpen

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.opened", map[string]string{"workOrderId": cmd.WorkOrderID, "assetId": cmd.AssetID}), nil
}

func (Behavior) addTask(order *State, cmd AddTask) (*aggregate.Effect, error) {
	if order.Status != StatusOpen && order.Status != StatusScheduled {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot add a task in status %s", order.Status)
	}
	if cmd.TaskID == "" {
		return nil, errors.Reject(errors.CodeInvalidArgument, "task id is required")
	}
	if order.task(cmd.TaskID) != nil {
		return nil, errors.Reject(errors.CodeInvalidArgument, "task %s already exists", cmd.TaskID)
	}

	order.Tasks = append(order.Tasks, Task{ID: cmd.TaskID, Description: cmd.Description})
	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.task_added", map[string]string{"taskId": cmd.TaskID}), nil
}

func (Behavior) schedule(order *State, cmd Schedule) (*aggregate.Effect, error) {
	if order.Status != StatusOpen {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot schedule a work order in status %s", order.Status)
	}
	if cmd.AssignedTo == "" || cmd.At.IsZero() {
		return nil, errors.Reject(errors.CodeInvalidArgument, "assignee and start time are required")
	}

	order.Status = StatusScheduled
	order.AssignedTo = cmd.AssignedTo
	order.ScheduledAt = cmd.At

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.scheduled", map[string]string{"assignedTo": cmd.AssignedTo}), nil
}

func (Behavior) start(order *State) (*aggregate.Effect, error) {
	if order.Status != StatusScheduled {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot start a work order in status %s", order.Status)
	}

	order.Status = StatusInProgress
	order.StartedAt = time.Now().UTC()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.started", nil), nil
}

func (Behavior) hold(order *State, cmd Hold) (*aggregate.Effect, error) {
	if order.Status != StatusInProgress {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot hold a work order in status %s", order.Status)
	}

	order.Status = StatusOnHold
	order.HoldReason = cmd.Reason

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.held", map[string]string{"reason": cmd.Reason}), nil
}

func (Behavior) resume(order *State) (*aggregate.Effect, error) {
	if order.Status != StatusOnHold {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot resume a work order in status %s", order.Status)
	}

	order.Status = StatusInProgress
	order.HoldReason = ""

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.resumed", nil), nil
}

func (Behavior) completeTask(order *State, cmd CompleteTask) (*aggregate.Effect, error) {
	if order.Status != StatusInProgress {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot complete a task in status %s", order.Status)
	}
	task := order.task(cmd.TaskID)
	if task == nil {
		return nil, errors.Reject(errors.CodeInvalidArgument, "task %s does not exist", cmd.TaskID)
	}
	if task.Done {
		return nil, errors.Reject(errors.CodeInvalidArgument, "task %s is already done", cmd.TaskID)
	}

	task.Done = true
	task.DoneBy = cmd.By
	task.DoneAt = time.Now().UTC()

	effect := aggregate.NewEffect(order).
		Emit("wo.task_completed", map[string]string{"taskId": cmd.TaskID, "by": cmd.By})

	// completing the last task completes the order exactly once
	if order.allTasksDone() {
		order.Status = StatusCompleted
		order.CompletedAt = time.Now().UTC()
		effect.Emit("wo.completed", nil)
	}

	return effect.WithResponse(order.Clone()), nil
}

func (Behavior) cancel(order *State, cmd Cancel) (*aggregate.Effect, error) {
	if order.Status.terminal() {
		return nil, errors.Reject(errors.CodeInvalidTransition,
			"cannot cancel a work order in status %s", order.Status)
	}

	order.Status = StatusCancelled
	order.CancelledBy = cmd.By
	order.CancelReason = cmd.Reason
	order.CancelledAt = time.Now().UTC()

	return aggregate.NewEffect(order).
		WithResponse(order.Clone()).
		Emit("wo.cancelled", map[string]string{"by": cmd.By, "reason": cmd.Reason}), nil
}
