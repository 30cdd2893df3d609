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

// Package shardmap provides a sharded, string-keyed concurrent map.
//
// Keys are spread across a fixed number of shards using xxh3 so that hot
// lookup paths do not contend on a single lock. It backs the process
// directory where every command resolution performs a read.
package shardmap

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// shardCount must be a power of two so the hash can be masked instead of
// taking a modulo.
const shardCount = 64

type shard[V any] struct {
	mu   sync.RWMutex
	data map[string]V
}

// Map is a string-keyed concurrent map sharded by xxh3.
type Map[V any] struct {
	shards [shardCount]*shard[V]
}

// New creates an empty sharded map.
func New[V any]() *Map[V] {
	m := &Map[V]{}
	for i := range m.shards {
		m.shards[i] = &shard[V]{data: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shardOf(key string) *shard[V] {
	return m.shards[xxh3.HashString(key)&(shardCount-1)]
}

// Get returns the value stored under key and whether it was found.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shardOf(key)
	s.mu.RLock()
	val, ok := s.data[key]
	s.mu.RUnlock()
	return val, ok
}

// Set stores the value under key, overwriting any previous value.
func (m *Map[V]) Set(key string, value V) {
	s := m.shardOf(key)
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}

// Delete removes the entry under key when it exists.
func (m *Map[V]) Delete(key string) {
	s := m.shardOf(key)
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// DeleteIf removes the entry under key only when pred returns true for the
// stored value. It reports whether a removal happened. The predicate runs
// while the shard lock is held and must not call back into the map.
func (m *Map[V]) DeleteIf(key string, pred func(V) bool) bool {
	s := m.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok || !pred(val) {
		return false
	}
	delete(s.data, key)
	return true
}

// Len returns the total number of entries across all shards.
func (m *Map[V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.RLock()
		total += len(s.data)
		s.mu.RUnlock()
	}
	return total
}

// Range calls f for every entry until f returns false. Iteration order is
// not defined and entries added during iteration may be skipped.
func (m *Map[V]) Range(f func(key string, value V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		snapshot := make(map[string]V, len(s.data))
		for k, v := range s.data {
			snapshot[k] = v
		}
		s.mu.RUnlock()
		for k, v := range snapshot {
			if !f(k, v) {
				return
			}
		}
	}
}

// Reset removes every entry from all shards.
func (m *Map[V]) Reset() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.data = make(map[string]V)
		s.mu.Unlock()
	}
}
