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

package aggregate

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/goleak"

	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/persistence"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const counterKind = "counter"

// counterState is the fixture aggregate state used across the runtime tests.
type counterState struct {
	Value int `json:"value"`
}

func (s *counterState) Kind() string { return counterKind }

func (s *counterState) Clone() State {
	clone := *s
	return &clone
}

type createCounter struct{}

func (createCounter) CommandName() string { return "CreateCounter" }

func (createCounter) InitialState() State { return new(counterState) }

type increment struct {
	Delta int
}

func (increment) CommandName() string { return "Increment" }

type slowIncrement struct {
	Delay time.Duration
}

func (slowIncrement) CommandName() string { return "SlowIncrement" }

type getValue struct{}

func (getValue) CommandName() string { return "GetValue" }

type explode struct{}

func (explode) CommandName() string { return "Explode" }

type counterBehavior struct{}

func (counterBehavior) Kind() string { return counterKind }

func (counterBehavior) NewState() State { return new(counterState) }

func (counterBehavior) Handle(_ context.Context, state State, cmd Command) (*Effect, error) {
	counter := state.(*counterState)
	switch cmd := cmd.(type) {
	case createCounter:
		return NewEffect(counter).
			WithResponse(counter.Clone()).
			Emit("counter.created", nil), nil
	case increment:
		if cmd.Delta == 0 {
			return nil, herrors.Reject(herrors.CodeInvalidArgument, "delta cannot be zero")
		}
		counter.Value += cmd.Delta
		return NewEffect(counter).
			WithResponse(counter.Value).
			Emit("counter.incremented", cmd.Delta), nil
	case slowIncrement:
		time.Sleep(cmd.Delay)
		counter.Value++
		return NewEffect(counter).WithResponse(counter.Value), nil
	case getValue:
		return NewEffect(counter).WithResponse(counter.Value), nil
	case explode:
		panic("kaboom")
	default:
		return nil, herrors.Reject(herrors.CodeInvalidArgument,
			"counter does not understand %s", cmd.CommandName())
	}
}

// countingStore wraps the in-memory store and counts snapshot loads, with an
// optional delay to widen the activation window.
type countingStore struct {
	persistence.StateStore
	loads     *atomic.Int64
	loadDelay time.Duration
}

func newCountingStore(delay time.Duration) *countingStore {
	return &countingStore{
		StateStore: persistence.NewMemoryStore(),
		loads:      atomic.NewInt64(0),
		loadDelay:  delay,
	}
}

func (s *countingStore) Load(ctx context.Context, key string) (*persistence.Snapshot, error) {
	s.loads.Inc()
	if s.loadDelay > 0 {
		time.Sleep(s.loadDelay)
	}
	return s.StateStore.Load(ctx, key)
}

// flakyStore fails every load until healed.
type flakyStore struct {
	persistence.StateStore
	healthy *atomic.Bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		StateStore: persistence.NewMemoryStore(),
		healthy:    atomic.NewBool(false),
	}
}

func (s *flakyStore) Load(ctx context.Context, key string) (*persistence.Snapshot, error) {
	if !s.healthy.Load() {
		return nil, herrors.ErrStoreUnavailable
	}
	return s.StateStore.Load(ctx, key)
}

// recordingPublisher collects published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) ID() string { return "recording" }

func (p *recordingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func testIdentity(t *testing.T, entity string) Identity {
	t.Helper()
	id, err := NewIdentity("acme", counterKind, entity)
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	return id
}
