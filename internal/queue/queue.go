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

// Package queue provides an unbounded, thread-safe FIFO queue backed by a
// growable ring buffer. It feeds the event emitter and the in-process stream
// subscribers.
package queue

import "sync"

// minQueueLen is the smallest capacity the queue may have.
// Must be a power of 2 for bitwise modulus: x % n == x & (n - 1).
const minQueueLen = 16

// Queue is a thread-safe unbounded FIFO queue using a ring buffer.
type Queue[T any] struct {
	mu      sync.RWMutex
	cond    *sync.Cond
	nodes   []*T
	head    int
	tail    int
	count   int
	closed  bool
	initCap int
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		initCap: minQueueLen,
		nodes:   make([]*T, minQueueLen),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push adds an item to the back of the queue. It is safe for concurrent
// producers. It returns false when the queue is closed; the item is dropped.
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	if q.count == len(q.nodes) {
		q.resize()
	}
	q.nodes[q.tail] = &item
	q.tail = (q.tail + 1) & (len(q.nodes) - 1)
	q.count++
	q.cond.Signal()
	q.mu.Unlock()
	return true
}

// Wait blocks until an item is available or the queue is closed. When there
// are items buffered the front one is returned immediately.
func (q *Queue[T]) Wait() (T, bool) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		var zero T
		return zero, false
	}
	if q.count != 0 {
		q.mu.Unlock()
		return q.Pop()
	}
	q.cond.Wait()
	q.mu.Unlock()
	return q.Pop()
}

// Pop removes the item at the front of the queue. It returns false when the
// queue is empty or closed.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		var zero T
		return zero, false
	}
	item := q.nodes[q.head]
	q.nodes[q.head] = nil
	q.head = (q.head + 1) & (len(q.nodes) - 1)
	q.count--
	// shrink when the buffer is only a quarter full
	if len(q.nodes) > minQueueLen && (q.count<<2) == len(q.nodes) {
		q.resize()
	}
	return *item, true
}

// Close closes the queue and discards any buffered items. All goroutines
// blocked in Wait return.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.count = 0
	q.nodes = nil
	q.cond.Broadcast()
}

// CloseRemaining closes the queue and returns every buffered item in FIFO
// order. All goroutines blocked in Wait return.
func (q *Queue[T]) CloseRemaining() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	remaining := make([]T, 0, q.count)
	for q.count > 0 {
		item := q.nodes[q.head]
		q.head = (q.head + 1) & (len(q.nodes) - 1)
		q.count--
		remaining = append(remaining, *item)
	}
	q.closed = true
	q.nodes = nil
	q.cond.Broadcast()
	return remaining
}

// IsClosed reports whether the queue has been closed. Only a true return has
// a definite meaning under concurrency.
func (q *Queue[T]) IsClosed() bool {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	return closed
}

// Len returns the number of items currently buffered.
func (q *Queue[T]) Len() int {
	q.mu.RLock()
	count := q.count
	q.mu.RUnlock()
	return count
}

// resize doubles or halves the backing slice to fit the current count.
// Callers must hold the lock.
func (q *Queue[T]) resize() {
	nodes := make([]*T, q.count<<1)
	if q.tail > q.head {
		copy(nodes, q.nodes[q.head:q.tail])
	} else {
		n := copy(nodes, q.nodes[q.head:])
		copy(nodes[n:], q.nodes[:q.tail])
	}
	q.tail = q.count
	q.head = 0
	q.nodes = nodes
}
