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

// Package workorder implements the maintenance work order aggregate: a
// scheduling lifecycle with an owned task list and auto-completion once
// every task is done.
package workorder

import (
	"time"

	"github.com/holonhq/holon/aggregate"
)

// Kind is the aggregate kind hosted by this package.
const Kind = "workorder"

// Status is the lifecycle state of a work order.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusScheduled  Status = "Scheduled"
	StatusInProgress Status = "InProgress"
	StatusOnHold     Status = "OnHold"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Task is an owned unit of work inside the order.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	DoneBy      string    `json:"doneBy,omitempty"`
	DoneAt      time.Time `json:"doneAt,omitzero"`
}

// State is the persisted work order.
type State struct {
	WorkOrderID string    `json:"workOrderId"`
	AssetID     string    `json:"assetId"`
	Summary     string    `json:"summary"`
	Status      Status    `json:"status"`
	Tasks       []Task    `json:"tasks"`
	ScheduledAt time.Time `json:"scheduledAt,omitzero"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	StartedAt   time.Time `json:"startedAt,omitzero"`
	CompletedAt time.Time `json:"completedAt,omitzero"`

	HoldReason   string    `json:"holdReason,omitempty"`
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
	clone.Tasks = make([]Task, len(s.Tasks))
	copy(clone.Tasks, s.Tasks)
	return &clone
}

func (s *State) created() bool {
	return s.Status != ""
}

func (s *State) task(id string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// allTasksDone reports whether every task has been completed.
func (s *State) allTasksDone() bool {
	if len(s.Tasks) == 0 {
		return false
	}
	for _, task := range s.Tasks {
		if !task.Done {
			return false
		}
	}
	return true
}
