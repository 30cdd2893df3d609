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
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	herrors "github.com/holonhq/holon/errors"
)

// RedisStore is a StateStore backed by Redis. Each identity maps to one
// string key holding the JSON-encoded snapshot; SET is atomic per key.
// Snapshot keys never expire.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

var _ StateStore = (*RedisStore)(nil)

// NewRedisStore creates a store on top of an existing Redis client. The
// prefix namespaces the snapshot keys, e.g. "holon:snapshot:".
func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Load retrieves the snapshot stored under the key.
func (s *RedisStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, herrors.ErrKeyNotFound
		}
		return nil, herrors.NewErrStoreUnavailable(err)
	}

	snapshot := new(Snapshot)
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, herrors.NewErrCorruptSnapshot(err)
	}
	return snapshot, nil
}

// Save writes the snapshot. SET is atomic for a single key.
func (s *RedisStore) Save(ctx context.Context, snapshot *Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.keyPrefix+snapshot.Key, raw, 0).Err(); err != nil {
		return herrors.NewErrStoreUnavailable(err)
	}
	return nil
}

// Delete removes the snapshot stored under the key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return herrors.NewErrStoreUnavailable(err)
	}
	return nil
}

// Exists reports whether a snapshot is stored under the key.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, herrors.NewErrStoreUnavailable(err)
	}
	return count > 0, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
