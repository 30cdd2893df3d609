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

// Package persistence defines the state store contract of the aggregate
// runtime and ships an in-memory store, an embedded BoltDB store and a Redis
// store. Exactly one snapshot exists per identity; each successful mutation
// overwrites it atomically.
package persistence

import "time"

// Snapshot is the persisted serialized state of one aggregate identity.
type Snapshot struct {
	// Key is the identity string "tenant/kind/entity".
	Key string `json:"key"`
	// Data is the packed state payload (see Pack).
	Data []byte `json:"data"`
	// Version increments by one per successful save.
	Version int64 `json:"version"`
	// UpdatedAt is the commit time of the save.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers cannot alias the stored bytes.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	data := make([]byte, len(s.Data))
	copy(data, s.Data)
	return &Snapshot{
		Key:       s.Key,
		Data:      data,
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
	}
}
