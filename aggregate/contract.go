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

// Package aggregate hosts business aggregates as virtual actors: each
// identity maps to at most one resident process that executes commands one
// at a time in arrival order, persists the new state before replying, and
// hands domain events to the emitter only after the write committed.
package aggregate

import "context"

// State is the serializable state of one aggregate instance. Implementations
// are plain structs whose child collections (lines, addresses, contacts) are
// owned exclusively by the aggregate and mutated only through commands.
type State interface {
	// Kind returns the aggregate kind the state belongs to.
	Kind() string
	// Clone returns a deep copy. The runtime hands the copy to the behavior
	// so a rejected command never leaks partial mutation into the resident
	// state.
	Clone() State
}

// Command is a request to mutate or read one aggregate instance.
type Command interface {
	// CommandName returns a stable name used in logs and metrics.
	CommandName() string
}

// CreationCommand marks the commands allowed to activate an identity that
// has no persisted state yet. Any other command against such an identity is
// rejected with NotFound.
type CreationCommand interface {
	Command
	// InitialState returns the empty state the new aggregate starts from.
	InitialState() State
}

// Behavior implements the state machine of one aggregate kind. A single
// Behavior value serves every instance of the kind; all per-instance data
// lives in the State.
type Behavior interface {
	// Kind returns the aggregate kind this behavior serves.
	Kind() string
	// NewState returns a zero state used to decode persisted snapshots.
	NewState() State
	// Handle executes one command against a working copy of the state.
	// It returns an Effect on success, or an error: a *errors.Rejection for
	// a business-rule violation, anything else for an internal fault. The
	// runtime discards the working copy on any error.
	Handle(ctx context.Context, state State, cmd Command) (*Effect, error)
}

// Effect is the outcome of a successfully handled command: the next state,
// the response for the caller and the domain events to deliver once the
// state write has committed.
type Effect struct {
	// State is the next state to persist. It must not be nil.
	State State
	// Response is the typed value returned to the caller.
	Response any
	// Events holds the events recorded during the command, in emission
	// order. Only EventType and Payload are set by the behavior; the
	// runtime stamps identity, sequence and time at commit.
	Events []Event
}

// NewEffect creates an effect carrying the next state.
func NewEffect(state State) *Effect {
	return &Effect{State: state}
}

// WithResponse sets the caller response.
func (e *Effect) WithResponse(response any) *Effect {
	e.Response = response
	return e
}

// Emit records a domain event to be delivered after commit.
func (e *Effect) Emit(eventType string, payload any) *Effect {
	e.Events = append(e.Events, Event{EventType: eventType, Payload: payload})
	return e
}
