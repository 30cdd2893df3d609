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
	"errors"

	"github.com/holonhq/holon/breaker"
	herrors "github.com/holonhq/holon/errors"
)

// GuardedStore wraps a StateStore with a circuit breaker so that a
// misbehaving backend fails fast instead of stalling every aggregate on
// store timeouts. Lookup misses and corrupt snapshots are semantic results,
// not infrastructure failures, and never trip the breaker.
type GuardedStore struct {
	next    StateStore
	breaker *breaker.Breaker
}

var _ StateStore = (*GuardedStore)(nil)

// NewGuardedStore wraps next with a breaker configured by opts.
func NewGuardedStore(next StateStore, opts ...breaker.Option) *GuardedStore {
	opts = append([]breaker.Option{
		breaker.WithIgnore(func(err error) bool {
			return errors.Is(err, herrors.ErrKeyNotFound) ||
				errors.Is(err, herrors.ErrCorruptSnapshot)
		}),
	}, opts...)
	return &GuardedStore{
		next:    next,
		breaker: breaker.New(opts...),
	}
}

// Load retrieves the snapshot stored under the key.
func (s *GuardedStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	var snapshot *Snapshot
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		snapshot, err = s.next.Load(ctx, key)
		return err
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return snapshot, nil
}

// Save writes the snapshot through the breaker.
func (s *GuardedStore) Save(ctx context.Context, snapshot *Snapshot) error {
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		return s.next.Save(ctx, snapshot)
	})
	return s.translate(err)
}

// Delete removes the snapshot stored under the key.
func (s *GuardedStore) Delete(ctx context.Context, key string) error {
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		return s.next.Delete(ctx, key)
	})
	return s.translate(err)
}

// Exists reports whether a snapshot is stored under the key.
func (s *GuardedStore) Exists(ctx context.Context, key string) (bool, error) {
	var found bool
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		found, err = s.next.Exists(ctx, key)
		return err
	})
	if err != nil {
		return false, s.translate(err)
	}
	return found, nil
}

// Close closes the wrapped store.
func (s *GuardedStore) Close() error {
	return s.next.Close()
}

// State exposes the breaker state for observability.
func (s *GuardedStore) State() breaker.State {
	return s.breaker.State()
}

func (s *GuardedStore) translate(err error) error {
	if errors.Is(err, breaker.ErrOpenState) {
		return herrors.NewErrStoreUnavailable(err)
	}
	return err
}
