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

	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/internal/syncmap"
)

// MemoryStore is an in-memory StateStore for tests and ephemeral hosting.
type MemoryStore struct {
	snapshots *syncmap.SyncMap[string, *Snapshot]
}

var _ StateStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: syncmap.New[string, *Snapshot](),
	}
}

// Load retrieves the snapshot stored under the key.
func (s *MemoryStore) Load(_ context.Context, key string) (*Snapshot, error) {
	snapshot, ok := s.snapshots.Get(key)
	if !ok {
		return nil, herrors.ErrKeyNotFound
	}
	return snapshot.Clone(), nil
}

// Save writes the snapshot, overwriting any previous version.
func (s *MemoryStore) Save(_ context.Context, snapshot *Snapshot) error {
	s.snapshots.Set(snapshot.Key, snapshot.Clone())
	return nil
}

// Delete removes the snapshot stored under the key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.snapshots.Delete(key)
	return nil
}

// Exists reports whether a snapshot is stored under the key.
func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.snapshots.Get(key)
	return ok, nil
}

// Close drops every snapshot.
func (s *MemoryStore) Close() error {
	s.snapshots.Reset()
	return nil
}

// Len returns the number of stored snapshots.
func (s *MemoryStore) Len() int {
	return s.snapshots.Len()
}
