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
	"time"

	bolt "go.etcd.io/bbolt"

	herrors "github.com/holonhq/holon/errors"
)

var boltBucket = []byte("snapshots")

// BoltStore is an embedded, file-backed StateStore built on bbolt. Every
// save runs in its own fsync'd transaction, so a snapshot is either fully
// written or not written at all.
type BoltStore struct {
	db *bolt.DB
}

var _ StateStore = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the database file at path and prepares the
// snapshot bucket.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, herrors.NewErrStoreUnavailable(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, herrors.NewErrStoreUnavailable(err)
	}
	return &BoltStore{db: db}, nil
}

// Load retrieves the snapshot stored under the key.
func (s *BoltStore) Load(_ context.Context, key string) (*Snapshot, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket(boltBucket).Get([]byte(key)); value != nil {
			raw = make([]byte, len(value))
			copy(raw, value)
		}
		return nil
	})
	if err != nil {
		return nil, herrors.NewErrStoreUnavailable(err)
	}
	if raw == nil {
		return nil, herrors.ErrKeyNotFound
	}

	snapshot := new(Snapshot)
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, herrors.NewErrCorruptSnapshot(err)
	}
	return snapshot, nil
}

// Save writes the snapshot in a single transaction.
func (s *BoltStore) Save(_ context.Context, snapshot *Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(snapshot.Key), raw)
	})
	if err != nil {
		return herrors.NewErrStoreUnavailable(err)
	}
	return nil
}

// Delete removes the snapshot stored under the key.
func (s *BoltStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
	if err != nil {
		return herrors.NewErrStoreUnavailable(err)
	}
	return nil
}

// Exists reports whether a snapshot is stored under the key.
func (s *BoltStore) Exists(_ context.Context, key string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(boltBucket).Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, herrors.NewErrStoreUnavailable(err)
	}
	return found, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
