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
	"time"

	"github.com/holonhq/holon/aggregate"
)

// OpenWorkOrder opens a new work order. It is the only command that may
// activate an identity with no persisted state.
type OpenWorkOrder struct {
	WorkOrderID string
	AssetID     string
	Summary     string
}

func (OpenWorkOrder) CommandName() string { return "OpenWorkOrder" }

// InitialState marks OpenWorkOrder as a creation command.
func (OpenWorkOrder) InitialState() aggregate.State { return new(State) }

var _ aggregate.CreationCommand = (*OpenWorkOrder)(nil)

// AddTask appends a task. Valid while the order is not terminal and not in
// progress.
type AddTask struct {
	TaskID      string
	Description string
}

func (AddTask) CommandName() string { return "AddTask" }

// Schedule assigns a technician and a start time, moving Open to Scheduled.
type Schedule struct {
	AssignedTo string
	At         time.Time
}

func (Schedule) CommandName() string { return "Schedule" }

// Start moves Scheduled to InProgress.
type Start struct{}

func (Start) CommandName() string { return "Start" }

// Hold parks an in-progress order in OnHold.
type Hold struct {
	Reason string
}

func (Hold) CommandName() string { return "Hold" }

// Resume returns an on-hold order to InProgress.
type Resume struct{}

func (Resume) CommandName() string { return "Resume" }

// CompleteTask marks one task done. Completing the last open task
// auto-completes the order.
type CompleteTask struct {
	TaskID string
	By     string
}

func (CompleteTask) CommandName() string { return "CompleteTask" }

// Cancel terminates the order from any non-terminal state.
type Cancel struct {
	By     string
	Reason string
}

func (Cancel) CommandName() string { return "Cancel" }

// Get returns the current order state without mutating it.
type Get struct{}

func (Get) CommandName() string { return "Get" }
