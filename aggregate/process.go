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
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/atomic"

	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/persistence"
)

const (
	idle int32 = iota
	busy
)

// process is the single-writer execution context of one identity. All
// commands against the identity funnel through its mailbox and are handled
// one at a time by at most one goroutine; this is the only mechanism
// serializing writes, so no lock appears in behavior code.
type process struct {
	identity Identity
	behavior Behavior
	rt       *Runtime
	mailbox  Mailbox

	// state is the resident committed state. Only the processing goroutine
	// touches it.
	state   State
	version int64

	processing         atomic.Int32
	activated          *atomic.Bool
	poisoned           *atomic.Bool
	latestActivity     atomic.Time
	handledCount       atomic.Int64
	passivateRequested atomic.Bool
}

var _ passivationParticipant = (*process)(nil)

func newProcess(rt *Runtime, id Identity, behavior Behavior, state State, version int64, mailbox Mailbox) *process {
	p := &process{
		identity:  id,
		behavior:  behavior,
		rt:        rt,
		mailbox:   mailbox,
		state:     state,
		version:   version,
		activated: atomic.NewBool(true),
		poisoned:  atomic.NewBool(false),
	}
	p.processing.Store(idle)
	p.latestActivity.Store(time.Now())
	return p
}

// newPoisonedProcess registers an execution context whose snapshot could not
// be decoded. Every command is rejected with CorruptState until the identity
// is repaired out of band and evicted.
func newPoisonedProcess(rt *Runtime, id Identity, behavior Behavior, mailbox Mailbox) *process {
	p := newProcess(rt, id, behavior, nil, 0, mailbox)
	p.poisoned.Store(true)
	return p
}

// isActive reports whether the process accepts commands.
func (p *process) isActive() bool {
	return p != nil && p.activated.Load()
}

// receive enqueues the envelope and wakes the processing loop. It returns
// false when the process has been deactivated and the caller must resolve a
// fresh one.
func (p *process) receive(env *envelope) bool {
	if !p.isActive() {
		return false
	}
	if err := p.mailbox.Enqueue(env); err != nil {
		env.fail(herrors.ErrMailboxFull)
		return true
	}
	p.schedule()
	return true
}

// schedule starts a processing loop when transitioning idle -> busy. When
// another loop already runs it returns immediately; the running loop picks
// the new envelope up.
func (p *process) schedule() {
	if !p.processing.CompareAndSwap(idle, busy) {
		return
	}

	go func() {
		var env *envelope
		for {
			if env != nil {
				releaseEnvelope(env)
			}

			if env = p.mailbox.Dequeue(); env != nil {
				if p.isActive() {
					p.handle(env)
				} else {
					// passivation raced the enqueue; route the command
					// through a fresh activation
					p.rt.redeliver(env)
					env = nil
				}
			}

			p.processing.Store(idle)

			if p.passivateRequested.Load() && p.tryPassivate() {
				if env != nil {
					releaseEnvelope(env)
				}
				p.rt.onPassivated(p)
				return
			}

			if !p.mailbox.IsEmpty() && p.processing.CompareAndSwap(idle, busy) {
				continue
			}
			if env != nil {
				releaseEnvelope(env)
			}
			return
		}
	}()
}

// handle executes one command: tenancy recheck, business logic against a
// working copy, persist, then reply and emit. A failure at any step leaves
// the resident state untouched.
func (p *process) handle(env *envelope) {
	defer p.recovery(env)

	started := time.Now()
	p.latestActivity.Store(started)

	if env.callerTenant != p.identity.TenantID() {
		env.fail(herrors.Reject(herrors.CodeTenantMismatch,
			"caller tenant %s cannot address aggregate of tenant %s",
			env.callerTenant, p.identity.TenantID()))
		return
	}

	if p.poisoned.Load() {
		env.fail(herrors.Reject(herrors.CodeCorruptState,
			"aggregate %s has a corrupt snapshot and is refusing commands", p.identity.String()))
		return
	}

	working := p.state.Clone()
	effect, err := p.behavior.Handle(env.ctx, working, env.cmd)
	if err != nil {
		if rejection, ok := herrors.AsRejection(err); ok {
			p.rt.metrics.RecordCommand(env.ctx, p.identity.Kind(), env.cmd.CommandName(), string(rejection.Code), time.Since(started))
			env.fail(rejection)
			return
		}
		p.rt.logger.Errorf("aggregate %s failed to handle %s: %v", p.identity.String(), env.cmd.CommandName(), err)
		p.rt.metrics.RecordCommand(env.ctx, p.identity.Kind(), env.cmd.CommandName(), string(herrors.CodeInternal), time.Since(started))
		env.fail(herrors.Reject(herrors.CodeInternal, "command %s failed", env.cmd.CommandName()))
		return
	}

	if effect == nil || effect.State == nil {
		p.rt.logger.Errorf("aggregate %s returned an empty effect for %s", p.identity.String(), env.cmd.CommandName())
		env.fail(herrors.Reject(herrors.CodeInternal, "command %s produced no state", env.cmd.CommandName()))
		return
	}

	// commit: persist the working copy before anything becomes observable.
	// The write survives a caller that already gave up.
	saveCtx := context.WithoutCancel(env.ctx)
	committedAt, err := p.commit(saveCtx, effect.State)
	if err != nil {
		p.rt.logger.Errorf("aggregate %s failed to persist %s: %v", p.identity.String(), env.cmd.CommandName(), err)
		p.rt.metrics.RecordCommand(env.ctx, p.identity.Kind(), env.cmd.CommandName(), string(herrors.CodeStoreUnavailable), time.Since(started))
		env.fail(herrors.Reject(herrors.CodeStoreUnavailable,
			"state store rejected the write for %s; retry later", p.identity.String()))
		return
	}

	events := p.stampEvents(effect.Events, committedAt)
	env.respond(&commandResult{response: effect.Response, events: events})
	p.rt.emitter.emit(events)

	p.rt.metrics.RecordCommand(env.ctx, p.identity.Kind(), env.cmd.CommandName(), "ok", time.Since(started))
	p.handledCount.Add(1)
	p.rt.afterCommand(p)
}

// commit serializes the next state and writes it through the store. The
// resident state is replaced only after the store acknowledged the write.
func (p *process) commit(ctx context.Context, next State) (time.Time, error) {
	data, err := json.Marshal(next)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode state: %w", err)
	}

	packed, err := persistence.Pack(data)
	if err != nil {
		return time.Time{}, fmt.Errorf("pack state: %w", err)
	}

	now := time.Now().UTC()
	snapshot := &persistence.Snapshot{
		Key:       p.identity.String(),
		Data:      packed,
		Version:   p.version + 1,
		UpdatedAt: now,
	}
	if err := p.rt.store.Save(ctx, snapshot); err != nil {
		return time.Time{}, err
	}

	p.version = snapshot.Version
	p.state = next
	return now, nil
}

// stampEvents fills in the identity, ordering and commit-time fields the
// behavior leaves blank.
func (p *process) stampEvents(events []Event, committedAt time.Time) []Event {
	if len(events) == 0 {
		return nil
	}
	stamped := make([]Event, len(events))
	for i, event := range events {
		event.AggregateID = p.identity.EntityID()
		event.Kind = p.identity.Kind()
		event.TenantID = p.identity.TenantID()
		event.Sequence = i + 1
		event.OccurredAt = committedAt
		stamped[i] = event
	}
	return stamped
}

// recovery turns a behavior panic into an internal failure so the process
// keeps draining its mailbox.
func (p *process) recovery(env *envelope) {
	if r := recover(); r != nil {
		pc, fn, line, _ := runtime.Caller(2)
		p.rt.logger.Errorf("aggregate %s panicked: %v at %s[%s:%d]",
			p.identity.String(), r, runtime.FuncForPC(pc).Name(), fn, line)
		env.fail(herrors.Reject(herrors.CodeInternal, "command %s panicked", env.cmd.CommandName()))
	}
}

// tryPassivate deactivates an idle process. It returns false when the
// process is busy, its mailbox is not empty, or a producer raced the
// deactivation.
func (p *process) tryPassivate() bool {
	if p.poisoned.Load() {
		// poisoned processes stay resident until evicted so the corruption
		// stays visible
		return false
	}
	if p.processing.Load() != idle || !p.mailbox.IsEmpty() {
		return false
	}
	if !p.activated.CompareAndSwap(true, false) {
		return false
	}
	if !p.mailbox.IsEmpty() {
		// a producer slipped in between the emptiness check and the CAS
		p.activated.Store(true)
		p.schedule()
		return false
	}
	return true
}

// deactivate marks the process inactive without the idle checks. Used on
// runtime shutdown and eviction after the mailbox drained.
func (p *process) deactivate() {
	p.activated.Store(false)
	p.mailbox.Dispose()
}

func (p *process) passivationID() string {
	return p.identity.String()
}

func (p *process) passivationLatestActivity() time.Time {
	return p.latestActivity.Load()
}
