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

package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/holonhq/holon/errors"
)

func sampleSnapshot(key string, version int64) *Snapshot {
	return &Snapshot{
		Key:       key,
		Data:      []byte{formatRaw, '{', '}'},
		Version:   version,
		UpdatedAt: time.Now().UTC(),
	}
}

// exerciseStore runs the contract every StateStore implementation must
// honor.
func exerciseStore(t *testing.T, store StateStore) {
	t.Helper()
	ctx := context.TODO()
	key := "acme/purchaseorder/po-1"

	t.Run("With absence reported as ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, herrors.ErrKeyNotFound)

		found, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})
	t.Run("With save and load round trip", func(t *testing.T) {
		saved := sampleSnapshot(key, 1)
		require.NoError(t, store.Save(ctx, saved))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, saved.Key, loaded.Key)
		assert.Equal(t, saved.Data, loaded.Data)
		assert.Equal(t, saved.Version, loaded.Version)

		found, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
	})
	t.Run("With saves overwriting atomically per key", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleSnapshot(key, 2)))
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(2), loaded.Version)
	})
	t.Run("With loaded snapshots detached from the stored bytes", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Data[0] = 0xFF

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, byte(formatRaw), again.Data[0])
	})
	t.Run("With delete idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))
		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, herrors.ErrKeyNotFound)
		require.NoError(t, store.Delete(ctx, key))
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)
	require.NoError(t, store.Close())
	assert.Zero(t, store.Len())
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holon.db")
	store, err := NewBoltStore(path)
	require.NoError(t, err)
	exerciseStore(t, store)
	require.NoError(t, store.Close())

	t.Run("With snapshots surviving a reopen", func(t *testing.T) {
		ctx := context.TODO()
		store, err := NewBoltStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, sampleSnapshot("acme/workorder/wo-1", 4)))
		require.NoError(t, store.Close())

		reopened, err := NewBoltStore(path)
		require.NoError(t, err)
		defer func() { require.NoError(t, reopened.Close()) }()

		loaded, err := reopened.Load(ctx, "acme/workorder/wo-1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), loaded.Version)
	})
}
