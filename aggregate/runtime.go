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

// Package aggregate hosts business aggregates as virtual actors. Identities
// are addressed by tenant, kind and entity; the runtime activates at most
// one single-writer process per identity, serializes its commands through a
// FIFO mailbox, persists every successful mutation before replying and
// passivates idle processes transparently.
package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/eventstream"
	"github.com/holonhq/holon/internal/shardmap"
	"github.com/holonhq/holon/internal/syncmap"
	"github.com/holonhq/holon/internal/timer"
	"github.com/holonhq/holon/log"
	"github.com/holonhq/holon/passivation"
	"github.com/holonhq/holon/persistence"
	"github.com/holonhq/holon/quota"
	"github.com/holonhq/holon/telemetry"
)

const (
	// DefaultAskTimeout bounds how long Execute waits for a reply.
	DefaultAskTimeout = 5 * time.Second
	// DefaultPassivationTimeout is the idle window of the default
	// time-based passivation strategy.
	DefaultPassivationTimeout = 2 * time.Minute

	loadMaxRetries   = 3
	loadInitialDelay = 50 * time.Millisecond
	loadMaxDelay     = 500 * time.Millisecond

	// deliverMaxAttempts bounds the resolve-enqueue loop when deliveries
	// keep racing passivation.
	deliverMaxAttempts = 5
)

// Runtime is the aggregate directory. It registers aggregate kinds, resolves
// or activates exactly one process per identity, routes commands and owns
// the shared infrastructure: state store, event emitter, passivation
// sweeper, quota and metrics.
type Runtime struct {
	instanceID string

	logger      log.Logger
	store       persistence.StateStore
	stream      eventstream.Stream
	publishers  []Publisher
	metrics     *telemetry.Metrics
	strategy    passivation.Strategy
	askTimeout  time.Duration
	quota       quota.Limiter
	quotaLimit  int
	quotaWindow time.Duration
	// mailboxCapacity > 0 selects the bounded mailbox
	mailboxCapacity int

	behaviors  *syncmap.SyncMap[string, Behavior]
	kinds      mapset.Set[string]
	directory  *shardmap.Map[*process]
	activation singleflight.Group
	emitter    *emitter
	sweeper    *sweeper
	timers     *timer.Pool

	started *atomic.Bool
}

// NewRuntime creates a runtime. Unless overridden by options it logs through
// the default logger, keeps snapshots in memory and passivates processes
// after two idle minutes.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		instanceID: uuid.NewString(),
		logger:     log.DefaultLogger,
		store:      persistence.NewMemoryStore(),
		stream:     eventstream.New(),
		strategy:   passivation.NewTimeBasedStrategy(DefaultPassivationTimeout),
		askTimeout: DefaultAskTimeout,
		behaviors:  syncmap.New[string, Behavior](),
		kinds:      mapset.NewSet[string](),
		directory:  shardmap.New[*process](),
		timers:     timer.NewPool(),
		started:    atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.emitter = newEmitter(rt.stream, rt.publishers, rt.logger)
	if strategy, ok := rt.strategy.(*passivation.TimeBasedStrategy); ok {
		rt.sweeper = newSweeper(strategy.Timeout(), rt.onPassivated, rt.logger)
	}
	return rt
}

// ID returns the unique identifier of this runtime instance.
func (rt *Runtime) ID() string {
	return rt.instanceID
}

// Register makes an aggregate kind hostable. Registering the same kind again
// replaces the behavior; resident processes keep the behavior they were
// activated with.
func (rt *Runtime) Register(behavior Behavior) error {
	if behavior == nil || behavior.Kind() == "" {
		return herrors.ErrKindNotRegistered
	}
	rt.behaviors.Set(behavior.Kind(), behavior)
	rt.kinds.Add(behavior.Kind())
	return nil
}

// Start brings the emitter, the passivation sweeper and the metric gauges
// online.
func (rt *Runtime) Start(_ context.Context) error {
	if !rt.started.CompareAndSwap(false, true) {
		return nil
	}
	rt.emitter.start()
	if rt.sweeper != nil {
		rt.sweeper.Start()
	}
	if err := rt.metrics.RegisterResident(func() int64 {
		return int64(rt.directory.Len())
	}); err != nil {
		return err
	}
	rt.logger.Infof("aggregate runtime %s started", rt.instanceID)
	return nil
}

// Stop deactivates every resident process, drains the emitter and releases
// the owned infrastructure. Commands submitted after Stop fail with
// ErrRuntimeNotStarted.
func (rt *Runtime) Stop(ctx context.Context) error {
	if !rt.started.CompareAndSwap(true, false) {
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if rt.sweeper != nil {
			rt.sweeper.Stop()
		}
		return nil
	})
	eg.Go(func() error {
		rt.directory.Range(func(_ string, p *process) bool {
			p.deactivate()
			return true
		})
		rt.directory.Reset()
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	// the emitter drains after the processes stopped producing
	rt.emitter.stop(ctx)
	rt.stream.Close()

	var errs error
	for _, pub := range rt.publishers {
		errs = multierr.Append(errs, pub.Close())
	}
	if rt.quota != nil {
		errs = multierr.Append(errs, rt.quota.Close())
	}
	errs = multierr.Append(errs, rt.store.Close())

	rt.logger.Infof("aggregate runtime %s stopped", rt.instanceID)
	return errs
}

// Execute routes one command to the identity's process and waits for the
// reply. Business rule violations come back as *errors.Rejection; plain
// errors are infrastructure faults. The returned events are the ones emitted
// by this command, already committed.
func (rt *Runtime) Execute(ctx context.Context, callerTenant string, id Identity, cmd Command) (any, []Event, error) {
	env, err := rt.prepare(ctx, callerTenant, id, cmd, true)
	if err != nil {
		return nil, nil, err
	}

	resultCh, errCh := env.result, env.err
	if err := rt.deliver(ctx, env); err != nil {
		releaseEnvelope(env)
		return nil, nil, err
	}

	t := rt.timers.Get(rt.askTimeout)
	defer rt.timers.Put(t)

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case <-t.C:
		return nil, nil, herrors.ErrRequestTimeout
	case err := <-errCh:
		if err != nil {
			return nil, nil, err
		}
		result := <-resultCh
		return result.response, result.events, nil
	}
}

// ExecuteAsync routes one command without waiting for the outcome. Delivery
// failures are returned; handling failures are logged by the process.
func (rt *Runtime) ExecuteAsync(ctx context.Context, callerTenant string, id Identity, cmd Command) error {
	env, err := rt.prepare(ctx, callerTenant, id, cmd, false)
	if err != nil {
		return err
	}
	if err := rt.deliver(ctx, env); err != nil {
		releaseEnvelope(env)
		return err
	}
	return nil
}

// prepare runs the boundary checks shared by Execute and ExecuteAsync: the
// runtime must be started, the command set, the identity well formed and,
// before anything else touches the directory, the caller tenant must match
// the identity tenant.
func (rt *Runtime) prepare(ctx context.Context, callerTenant string, id Identity, cmd Command, synchronous bool) (*envelope, error) {
	if !rt.started.Load() {
		return nil, herrors.ErrRuntimeNotStarted
	}
	if cmd == nil {
		return nil, herrors.ErrEmptyCommand
	}
	if id.TenantID() == "" || id.Kind() == "" || id.EntityID() == "" {
		return nil, herrors.ErrInvalidIdentity
	}

	if callerTenant != id.TenantID() {
		return nil, herrors.Reject(herrors.CodeTenantMismatch,
			"caller tenant %s cannot address aggregate of tenant %s", callerTenant, id.TenantID())
	}

	if rt.quota != nil {
		allowed, err := rt.quota.Allow(ctx, "tenant:"+callerTenant, rt.quotaLimit, rt.quotaWindow)
		if err != nil {
			// quota backend trouble must not take command processing down
			rt.logger.Warnf("command quota check failed for tenant %s: %v", callerTenant, err)
		} else if !allowed {
			return nil, herrors.Reject(herrors.CodeRateLimited,
				"tenant %s exceeded the command rate limit", callerTenant)
		}
	}

	return getEnvelope().build(ctx, callerTenant, id, cmd, synchronous), nil
}

// deliver resolves the process and enqueues the envelope, retrying when the
// enqueue races a passivation. The envelope stays valid on failure; the
// caller decides whether to fail it back or release it.
func (rt *Runtime) deliver(ctx context.Context, env *envelope) error {
	for attempt := 0; attempt < deliverMaxAttempts; attempt++ {
		p, err := rt.ensureProcess(ctx, env.identity, env.cmd)
		if err != nil {
			return err
		}
		if p.receive(env) {
			return nil
		}
	}
	return herrors.Reject(herrors.CodeInternal,
		"delivery to %s kept racing passivation", env.identity.String())
}

// redeliver reroutes an envelope that was dequeued after its process
// deactivated. Called from the draining goroutine of the dead process.
func (rt *Runtime) redeliver(env *envelope) {
	if err := rt.deliver(env.ctx, env); err != nil {
		env.fail(err)
	}
}

// ensureProcess returns the live process of the identity, activating it when
// absent. Concurrent activations of the same identity collapse into one.
func (rt *Runtime) ensureProcess(ctx context.Context, id Identity, cmd Command) (*process, error) {
	key := id.String()
	if p, ok := rt.directory.Get(key); ok && p.isActive() {
		return p, nil
	}

	value, err, _ := rt.activation.Do(key, func() (any, error) {
		if p, ok := rt.directory.Get(key); ok && p.isActive() {
			return p, nil
		}
		return rt.activate(ctx, id, cmd)
	})
	if err != nil {
		return nil, err
	}
	return value.(*process), nil
}

// activate loads the snapshot and registers a fresh process. Nothing is
// registered when the load fails, so the next command retries cleanly. A
// snapshot that cannot be decoded registers a poisoned process instead: the
// corruption stays visible until the identity is repaired and evicted.
func (rt *Runtime) activate(ctx context.Context, id Identity, cmd Command) (*process, error) {
	behavior, ok := rt.behaviors.Get(id.Kind())
	if !ok {
		return nil, herrors.NewErrKindNotRegistered(id.Kind())
	}

	key := id.String()
	var snapshot *persistence.Snapshot
	retrier := retry.NewRetrier(loadMaxRetries, loadInitialDelay, loadMaxDelay)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		var err error
		snapshot, err = rt.store.Load(ctx, key)
		if errors.Is(err, herrors.ErrKeyNotFound) || errors.Is(err, herrors.ErrCorruptSnapshot) {
			return retry.Stop(err)
		}
		return err
	})

	switch {
	case err == nil:
		state, decodeErr := rt.decodeState(behavior, snapshot)
		if decodeErr != nil {
			rt.logger.Errorf("aggregate %s has a corrupt snapshot: %v", key, decodeErr)
			return rt.register(ctx, newPoisonedProcess(rt, id, behavior, rt.newMailbox())), nil
		}
		return rt.register(ctx, newProcess(rt, id, behavior, state, snapshot.Version, rt.newMailbox())), nil

	case errors.Is(err, herrors.ErrKeyNotFound):
		creation, ok := cmd.(CreationCommand)
		if !ok {
			return nil, herrors.Reject(herrors.CodeNotFound, "aggregate %s does not exist", key)
		}
		return rt.register(ctx, newProcess(rt, id, behavior, creation.InitialState(), 0, rt.newMailbox())), nil

	case errors.Is(err, herrors.ErrCorruptSnapshot):
		rt.logger.Errorf("aggregate %s has a corrupt snapshot: %v", key, err)
		return rt.register(ctx, newPoisonedProcess(rt, id, behavior, rt.newMailbox())), nil

	default:
		rt.logger.Errorf("aggregate %s failed to load: %v", key, err)
		return nil, herrors.Reject(herrors.CodeStoreUnavailable,
			"state store could not load %s; retry later", key)
	}
}

func (rt *Runtime) decodeState(behavior Behavior, snapshot *persistence.Snapshot) (State, error) {
	data, err := persistence.Unpack(snapshot.Data)
	if err != nil {
		return nil, err
	}
	state := behavior.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, herrors.NewErrCorruptSnapshot(err)
	}
	return state, nil
}

func (rt *Runtime) register(ctx context.Context, p *process) *process {
	rt.directory.Set(p.identity.String(), p)
	rt.metrics.RecordActivation(ctx, p.identity.Kind())
	if rt.sweeper != nil {
		rt.sweeper.Track(p)
	}
	return p
}

func (rt *Runtime) newMailbox() Mailbox {
	if rt.mailboxCapacity > 0 {
		return newBoundedMailbox(rt.mailboxCapacity)
	}
	return newDefaultMailbox()
}

// afterCommand runs in the processing loop after each handled command. The
// count-based strategy requests passivation here; the loop honors it once
// the mailbox is drained.
func (rt *Runtime) afterCommand(p *process) {
	if strategy, ok := rt.strategy.(*passivation.MessagesCountBasedStrategy); ok {
		if p.handledCount.Load() >= int64(strategy.MaxMessages()) {
			p.passivateRequested.Store(true)
		}
	}
}

// onPassivated finalizes a successful passivation: the process leaves the
// directory and its mailbox is disposed.
func (rt *Runtime) onPassivated(participant passivationParticipant) {
	key := participant.passivationID()
	rt.directory.DeleteIf(key, func(p *process) bool {
		return !p.isActive()
	})
	participant.deactivate()
	if p, ok := participant.(*process); ok {
		rt.metrics.RecordDeactivation(context.Background(), p.identity.Kind())
	}
	if rt.sweeper != nil {
		rt.sweeper.Untrack(key)
	}
}

// Evict removes the resident process of an identity regardless of its
// state. It is the repair hook for poisoned identities: fix the snapshot out
// of band, evict, and the next command reactivates from the repaired data.
func (rt *Runtime) Evict(_ context.Context, id Identity) error {
	if !rt.started.Load() {
		return herrors.ErrRuntimeNotStarted
	}
	key := id.String()
	p, ok := rt.directory.Get(key)
	if !ok {
		return nil
	}
	rt.directory.Delete(key)
	if rt.sweeper != nil {
		rt.sweeper.Untrack(key)
	}
	p.deactivate()
	rt.metrics.RecordDeactivation(context.Background(), id.Kind())
	rt.logger.Infof("aggregate %s evicted", key)
	return nil
}

// Subscribe attaches a consumer to the committed-event stream of one tenant.
// An empty kind subscribes to every event of the tenant.
func (rt *Runtime) Subscribe(tenantID, kind string) eventstream.Subscriber {
	sub := rt.stream.AddSubscriber()
	if kind == "" {
		rt.stream.Subscribe(sub, TenantTopic(tenantID))
	} else {
		rt.stream.Subscribe(sub, KindTopic(tenantID, kind))
	}
	return sub
}

// Unsubscribe detaches a consumer from the stream.
func (rt *Runtime) Unsubscribe(sub eventstream.Subscriber) {
	rt.stream.RemoveSubscriber(sub)
}

// Kinds lists the registered aggregate kinds.
func (rt *Runtime) Kinds() []string {
	return rt.kinds.ToSlice()
}

// Identities lists the resident identities.
func (rt *Runtime) Identities() []string {
	identities := make([]string, 0, rt.directory.Len())
	rt.directory.Range(func(key string, p *process) bool {
		if p.isActive() {
			identities = append(identities, key)
		}
		return true
	})
	return identities
}

// Running reports whether the runtime accepts commands.
func (rt *Runtime) Running() bool {
	return rt.started.Load()
}
