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
	gods "github.com/Workiva/go-datastructures/queue"
)

// boundedMailbox is a bounded MPSC mailbox backed by a ring buffer. Enqueue
// blocks when the mailbox is full, providing strict backpressure per
// identity instead of unbounded memory growth.
type boundedMailbox struct {
	underlying *gods.RingBuffer
}

var _ Mailbox = (*boundedMailbox)(nil)

func newBoundedMailbox(capacity int) *boundedMailbox {
	return &boundedMailbox{
		underlying: gods.NewRingBuffer(uint64(capacity)),
	}
}

// Enqueue inserts an envelope, blocking while the mailbox is full. It
// returns an error when the mailbox has been disposed.
func (m *boundedMailbox) Enqueue(env *envelope) error {
	return m.underlying.Put(env)
}

// Dequeue removes and returns the next envelope, or nil when empty.
func (m *boundedMailbox) Dequeue() *envelope {
	if m.underlying.Len() > 0 {
		item, _ := m.underlying.Get()
		if env, ok := item.(*envelope); ok {
			return env
		}
	}
	return nil
}

// Len returns the current number of queued envelopes.
func (m *boundedMailbox) Len() int64 {
	return int64(m.underlying.Len())
}

// IsEmpty reports whether the mailbox currently holds no envelopes.
func (m *boundedMailbox) IsEmpty() bool {
	return m.underlying.Len() == 0
}

// Dispose releases the ring buffer and unblocks any waiting producers.
func (m *boundedMailbox) Dispose() {
	m.underlying.Dispose()
}
