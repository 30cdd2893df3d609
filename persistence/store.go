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

import "context"

// StateStore is the durable snapshot store of the aggregate runtime.
//
// Implementations must be safe for concurrent access from different
// identities. They never need to arbitrate concurrent writes to the same
// key: the runtime guarantees a single writer per identity.
type StateStore interface {
	// Load retrieves the snapshot stored under the key. It returns
	// errors.ErrKeyNotFound when the identity was never persisted; absence
	// is not a fault.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Save writes the snapshot, inserting or overwriting atomically for its
	// key.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Delete removes the snapshot stored under the key. Deleting an absent
	// key is a no-op.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a snapshot is stored under the key without
	// loading its payload.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases the resources held by the store.
	Close() error
}
