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

// Package breaker provides a small circuit breaker used to guard the state
// store: after a run of consecutive infrastructure failures the breaker
// opens and calls fail fast until a cooldown elapses, then a single probe
// decides whether to close again.
package breaker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"
)

// ErrOpenState is returned when the breaker rejects a call without
// executing it.
var ErrOpenState = errors.New("circuit breaker is open")

// State is the breaker state.
type State int32

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen fails every call fast.
	StateOpen
	// StateHalfOpen lets a single probe through.
	StateHalfOpen
)

// String returns the text form of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker is a consecutive-failure circuit breaker. It is safe for
// concurrent use.
type Breaker struct {
	failureThreshold int32
	cooldown         time.Duration
	ignore           func(error) bool

	state    atomic.Int32
	failures atomic.Int32
	openedAt atomic.Time
	probing  atomic.Bool
}

// New creates a breaker with the given options.
func New(opts ...Option) *Breaker {
	b := &Breaker{
		failureThreshold: defaultFailureThreshold,
		cooldown:         defaultCooldown,
		ignore:           func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(b)
	}
	b.state.Store(int32(StateClosed))
	return b
}

// State returns the current state, accounting for an elapsed cooldown.
func (b *Breaker) State() State {
	state := State(b.state.Load())
	if state == StateOpen && time.Since(b.openedAt.Load()) >= b.cooldown {
		return StateHalfOpen
	}
	return state
}

// Do executes fn under the breaker. When the breaker is open the call is
// rejected with ErrOpenState without executing fn. Errors matched by the
// ignore classifier pass through without counting as failures.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	switch b.State() {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		// only one probe at a time
		if !b.probing.CompareAndSwap(false, true) {
			return ErrOpenState
		}
		b.state.Store(int32(StateHalfOpen))
		defer b.probing.Store(false)
	}

	err := fn(ctx)
	if err != nil && !b.ignore(err) {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return err
}

func (b *Breaker) onSuccess() {
	b.failures.Store(0)
	b.state.Store(int32(StateClosed))
}

func (b *Breaker) onFailure() {
	if State(b.state.Load()) == StateHalfOpen {
		b.trip()
		return
	}
	if b.failures.Add(1) >= b.failureThreshold {
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.failures.Store(0)
	b.openedAt.Store(time.Now())
	b.state.Store(int32(StateOpen))
}
