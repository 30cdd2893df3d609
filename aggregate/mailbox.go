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
	"sync"
	"sync/atomic"
)

// Mailbox is the per-process command queue. Implementations must be safe
// for concurrent producers and a single consumer, and must preserve FIFO
// ordering.
type Mailbox interface {
	// Enqueue places an envelope at the tail. It returns an error only when
	// the mailbox rejects the envelope (bounded variant, full or disposed).
	Enqueue(env *envelope) error
	// Dequeue removes and returns the next envelope, or nil when empty.
	// Only the single consumer may call it.
	Dequeue() *envelope
	// Len returns the current number of queued envelopes.
	Len() int64
	// IsEmpty reports whether the mailbox holds no envelopes.
	IsEmpty() bool
	// Dispose releases any resources held by the mailbox.
	Dispose()
}

type mailboxNode struct {
	value atomic.Pointer[envelope]
	next  atomic.Pointer[mailboxNode]
}

var mailboxNodePool = sync.Pool{New: func() any { return new(mailboxNode) }}

// defaultMailbox is an unbounded lock-free MPSC queue with pooled nodes.
// It is the default mailbox of every process.
type defaultMailbox struct {
	head atomic.Pointer[mailboxNode]
	tail atomic.Pointer[mailboxNode]
	len  atomic.Int64
}

var _ Mailbox = (*defaultMailbox)(nil)

func newDefaultMailbox() *defaultMailbox {
	stub := new(mailboxNode)
	m := &defaultMailbox{}
	m.head.Store(stub)
	m.tail.Store(stub)
	return m
}

// Enqueue places the envelope at the tail of the mailbox.
func (m *defaultMailbox) Enqueue(env *envelope) error {
	n := mailboxNodePool.Get().(*mailboxNode)
	n.value.Store(env)
	n.next.Store(nil)

	prev := m.tail.Swap(n)
	prev.next.Store(n)
	m.len.Add(1)
	return nil
}

// Dequeue removes the next envelope. It returns nil when the mailbox is
// empty. Only a single consumer may invoke Dequeue.
func (m *defaultMailbox) Dequeue() *envelope {
	head := m.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil
	}

	m.head.Store(next)
	value := next.value.Load()
	next.value.Store(nil)
	m.len.Add(-1)

	head.next.Store(nil)
	head.value.Store(nil)
	mailboxNodePool.Put(head)
	return value
}

// Len returns the current number of queued envelopes.
func (m *defaultMailbox) Len() int64 {
	return m.len.Load()
}

// IsEmpty reports whether the mailbox currently holds no envelopes.
func (m *defaultMailbox) IsEmpty() bool {
	return m.Len() == 0
}

// Dispose is a no-op for the unbounded mailbox.
func (m *defaultMailbox) Dispose() {}
