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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/internal/pause"
	"github.com/holonhq/holon/log"
	"github.com/holonhq/holon/passivation"
	"github.com/holonhq/holon/persistence"
	"github.com/holonhq/holon/quota"
)

func newTestRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	ctx := context.TODO()
	rt := NewRuntime(append([]Option{WithLogger(log.DiscardLogger)}, opts...)...)
	require.NoError(t, rt.Register(counterBehavior{}))
	require.NoError(t, rt.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, rt.Stop(ctx))
	})
	return rt
}

func requireRejection(t *testing.T, err error, code herrors.Code) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, herrors.HasCode(err, code), "want %s, got %v", code, err)
}

func TestRuntime(t *testing.T) {
	t.Run("With commands refused before Start", func(t *testing.T) {
		ctx := context.TODO()
		rt := NewRuntime(WithLogger(log.DiscardLogger))
		require.NoError(t, rt.Register(counterBehavior{}))

		_, _, err := rt.Execute(ctx, "acme", testIdentity(t, "c1"), createCounter{})
		assert.ErrorIs(t, err, herrors.ErrRuntimeNotStarted)
		assert.False(t, rt.Running())
	})
	t.Run("With nil behaviors rejected at registration", func(t *testing.T) {
		rt := NewRuntime(WithLogger(log.DiscardLogger))
		assert.ErrorIs(t, rt.Register(nil), herrors.ErrKindNotRegistered)
	})
	t.Run("With lifecycle idempotent", func(t *testing.T) {
		ctx := context.TODO()
		rt := newTestRuntime(t)
		assert.True(t, rt.Running())
		assert.Contains(t, rt.Kinds(), counterKind)
		require.NoError(t, rt.Start(ctx))

		require.NoError(t, rt.Stop(ctx))
		assert.False(t, rt.Running())
		_, _, err := rt.Execute(ctx, "acme", testIdentity(t, "c1"), createCounter{})
		assert.ErrorIs(t, err, herrors.ErrRuntimeNotStarted)
	})
}

func TestExecuteValidation(t *testing.T) {
	ctx := context.TODO()
	rt := newTestRuntime(t)

	t.Run("With nil commands refused", func(t *testing.T) {
		_, _, err := rt.Execute(ctx, "acme", testIdentity(t, "c1"), nil)
		assert.ErrorIs(t, err, herrors.ErrEmptyCommand)
	})
	t.Run("With malformed identities refused", func(t *testing.T) {
		_, _, err := rt.Execute(ctx, "acme", Identity{}, createCounter{})
		assert.ErrorIs(t, err, herrors.ErrInvalidIdentity)
	})
	t.Run("With the tenant guard ahead of kind resolution", func(t *testing.T) {
		// an unregistered kind proves the tenant check fires before the
		// directory is consulted
		id, err := NewIdentity("acme", "ghost", "g1")
		require.NoError(t, err)
		_, _, execErr := rt.Execute(ctx, "rival", id, createCounter{})
		requireRejection(t, execErr, herrors.CodeTenantMismatch)
	})
	t.Run("With unregistered kinds refused", func(t *testing.T) {
		id, err := NewIdentity("acme", "ghost", "g1")
		require.NoError(t, err)
		_, _, execErr := rt.Execute(ctx, "acme", id, createCounter{})
		assert.ErrorIs(t, execErr, herrors.ErrKindNotRegistered)
	})
}

func TestExecute(t *testing.T) {
	ctx := context.TODO()

	t.Run("With creation returning the response and committed events", func(t *testing.T) {
		rt := newTestRuntime(t)
		id := testIdentity(t, "c1")

		response, events, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)
		require.IsType(t, &counterState{}, response)
		require.Len(t, events, 1)
		assert.Equal(t, "counter.created", events[0].EventType)
		assert.Equal(t, "acme", events[0].TenantID)
		assert.Equal(t, counterKind, events[0].Kind)
		assert.Equal(t, "c1", events[0].AggregateID)
		assert.Equal(t, 1, events[0].Sequence)
		assert.False(t, events[0].OccurredAt.IsZero())
	})
	t.Run("With non-creation commands on a fresh identity rejected", func(t *testing.T) {
		rt := newTestRuntime(t)
		_, _, err := rt.Execute(ctx, "acme", testIdentity(t, "missing"), getValue{})
		requireRejection(t, err, herrors.CodeNotFound)
	})
	t.Run("With rejections carrying their code", func(t *testing.T) {
		rt := newTestRuntime(t)
		id := testIdentity(t, "c1")
		_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)

		_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 0})
		requireRejection(t, err, herrors.CodeInvalidArgument)

		// the rejection left the resident state untouched
		response, _, err := rt.Execute(ctx, "acme", id, getValue{})
		require.NoError(t, err)
		assert.Equal(t, 0, response)
	})
	t.Run("With behavior panics contained as internal failures", func(t *testing.T) {
		rt := newTestRuntime(t)
		id := testIdentity(t, "c1")
		_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)

		_, _, err = rt.Execute(ctx, "acme", id, explode{})
		requireRejection(t, err, herrors.CodeInternal)

		// the process keeps serving commands afterwards
		response, _, err := rt.Execute(ctx, "acme", id, getValue{})
		require.NoError(t, err)
		assert.Equal(t, 0, response)
	})
	t.Run("With async execution applied eventually", func(t *testing.T) {
		rt := newTestRuntime(t)
		id := testIdentity(t, "c1")
		_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)

		require.NoError(t, rt.ExecuteAsync(ctx, "acme", id, increment{Delta: 5}))
		pause.For(200 * time.Millisecond)

		response, _, err := rt.Execute(ctx, "acme", id, getValue{})
		require.NoError(t, err)
		assert.Equal(t, 5, response)
	})
}

func TestSerialExecution(t *testing.T) {
	ctx := context.TODO()
	rt := newTestRuntime(t)
	id := testIdentity(t, "c1")

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)

	// concurrent increments against one identity must behave as if applied
	// one at a time: no lost updates
	const writers = 50
	eg := new(errgroup.Group)
	for range writers {
		eg.Go(func() error {
			_, _, err := rt.Execute(ctx, "acme", id, increment{Delta: 1})
			return err
		})
	}
	require.NoError(t, eg.Wait())

	response, _, err := rt.Execute(ctx, "acme", id, getValue{})
	require.NoError(t, err)
	assert.Equal(t, writers, response)
}

func TestPassivation(t *testing.T) {
	ctx := context.TODO()

	t.Run("With idle processes passivated and state preserved", func(t *testing.T) {
		store := persistence.NewMemoryStore()
		rt := newTestRuntime(t,
			WithStateStore(store),
			WithPassivation(passivation.NewTimeBasedStrategy(100*time.Millisecond)))
		id := testIdentity(t, "c1")

		_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)
		_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 3})
		require.NoError(t, err)
		assert.Contains(t, rt.Identities(), id.String())

		pause.For(600 * time.Millisecond)
		assert.Empty(t, rt.Identities())

		// the next command reactivates from the snapshot
		response, _, err := rt.Execute(ctx, "acme", id, getValue{})
		require.NoError(t, err)
		assert.Equal(t, 3, response)
	})
	t.Run("With count-based passivation after the message limit", func(t *testing.T) {
		rt := newTestRuntime(t,
			WithPassivation(passivation.NewMessageCountBasedStrategy(2)))
		id := testIdentity(t, "c1")

		_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)
		_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 1})
		require.NoError(t, err)

		pause.For(200 * time.Millisecond)
		assert.Empty(t, rt.Identities())

		response, _, err := rt.Execute(ctx, "acme", id, getValue{})
		require.NoError(t, err)
		assert.Equal(t, 1, response)
	})
	t.Run("With long-lived processes never passivated", func(t *testing.T) {
		rt := newTestRuntime(t, WithPassivation(passivation.NewLongLivedStrategy()))
		id := testIdentity(t, "c1")

		_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
		require.NoError(t, err)
		pause.For(300 * time.Millisecond)
		assert.Contains(t, rt.Identities(), id.String())
	})
}

func TestActivationCollapse(t *testing.T) {
	ctx := context.TODO()
	store := newCountingStore(20 * time.Millisecond)
	rt := newTestRuntime(t, WithStateStore(store))
	id := testIdentity(t, "c1")

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)
	require.NoError(t, rt.Evict(ctx, id))

	// ten concurrent commands against the evicted identity collapse into a
	// single snapshot load
	eg := new(errgroup.Group)
	for range 10 {
		eg.Go(func() error {
			_, _, err := rt.Execute(ctx, "acme", id, getValue{})
			return err
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int64(2), store.loads.Load())
}

func TestPoisonedIdentity(t *testing.T) {
	ctx := context.TODO()
	store := persistence.NewMemoryStore()
	rt := newTestRuntime(t, WithStateStore(store))
	id := testIdentity(t, "c1")

	require.NoError(t, store.Save(ctx, &persistence.Snapshot{
		Key:       id.String(),
		Data:      []byte("definitely not a snapshot"),
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}))

	// every command against the poisoned identity keeps failing
	_, _, err := rt.Execute(ctx, "acme", id, getValue{})
	requireRejection(t, err, herrors.CodeCorruptState)
	_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 1})
	requireRejection(t, err, herrors.CodeCorruptState)

	// repair out of band, evict, and the identity serves again
	data, err := json.Marshal(&counterState{Value: 7})
	require.NoError(t, err)
	packed, err := persistence.Pack(data)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &persistence.Snapshot{
		Key:       id.String(),
		Data:      packed,
		Version:   2,
		UpdatedAt: time.Now().UTC(),
	}))
	require.NoError(t, rt.Evict(ctx, id))

	response, _, err := rt.Execute(ctx, "acme", id, getValue{})
	require.NoError(t, err)
	assert.Equal(t, 7, response)
}

func TestStoreUnavailable(t *testing.T) {
	ctx := context.TODO()
	store := newFlakyStore()
	rt := newTestRuntime(t, WithStateStore(store))
	id := testIdentity(t, "c1")

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	requireRejection(t, err, herrors.CodeStoreUnavailable)
	// nothing was registered, the next command retries cleanly
	assert.Empty(t, rt.Identities())

	store.healthy.Store(true)
	_, _, err = rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)
}

func TestCommandQuota(t *testing.T) {
	ctx := context.TODO()
	rt := newTestRuntime(t,
		WithCommandQuota(quota.NewMemoryLimiter(), 2, time.Minute))
	id := testIdentity(t, "c1")

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)
	_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 1})
	require.NoError(t, err)

	_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 1})
	requireRejection(t, err, herrors.CodeRateLimited)
}

func TestAskTimeout(t *testing.T) {
	ctx := context.TODO()
	rt := newTestRuntime(t, WithAskTimeout(50*time.Millisecond))
	id := testIdentity(t, "c1")

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)

	_, _, err = rt.Execute(ctx, "acme", id, slowIncrement{Delay: 200 * time.Millisecond})
	assert.ErrorIs(t, err, herrors.ErrRequestTimeout)

	// let the in-flight handler finish before shutdown
	pause.For(300 * time.Millisecond)
}

func TestEventDelivery(t *testing.T) {
	ctx := context.TODO()
	publisher := new(recordingPublisher)
	rt := newTestRuntime(t, WithPublishers(publisher))
	id := testIdentity(t, "c1")

	kindSub := rt.Subscribe("acme", counterKind)
	tenantSub := rt.Subscribe("acme", "")
	defer rt.Unsubscribe(kindSub)
	defer rt.Unsubscribe(tenantSub)

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)
	_, _, err = rt.Execute(ctx, "acme", id, increment{Delta: 2})
	require.NoError(t, err)

	pause.For(300 * time.Millisecond)

	published := publisher.Events()
	require.Len(t, published, 2)
	assert.Equal(t, "counter.created", published[0].EventType)
	assert.Equal(t, "counter.incremented", published[1].EventType)

	var kindEvents, tenantEvents int
	for message := range kindSub.Iterator() {
		event, ok := message.Payload.(Event)
		require.True(t, ok)
		assert.Equal(t, "acme", event.TenantID)
		kindEvents++
	}
	for range tenantSub.Iterator() {
		tenantEvents++
	}
	assert.Equal(t, 2, kindEvents)
	assert.Equal(t, 2, tenantEvents)
}

func TestEvict(t *testing.T) {
	ctx := context.TODO()
	rt := newTestRuntime(t)
	id := testIdentity(t, "c1")

	// evicting an absent identity is a no-op
	require.NoError(t, rt.Evict(ctx, id))

	_, _, err := rt.Execute(ctx, "acme", id, createCounter{})
	require.NoError(t, err)
	assert.Contains(t, rt.Identities(), id.String())

	require.NoError(t, rt.Evict(ctx, id))
	assert.Empty(t, rt.Identities())
}
