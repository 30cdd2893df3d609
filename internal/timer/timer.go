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

// Package timer provides a pool of reusable timers for request timeouts.
// Allocating a fresh time.Timer per command adds measurable garbage on the
// hot path; pooled timers are reset in place instead.
package timer

import (
	"sync"
	"time"
)

// Pool is a sync.Pool of time.Timer values.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a timer pool.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				// the timer must not be running while pooled
				t := time.NewTimer(time.Hour)
				t.Stop()
				return t
			},
		},
	}
}

// Get returns a timer armed with the given duration.
func (p *Pool) Get(timeout time.Duration) *time.Timer {
	t := p.pool.Get().(*time.Timer)
	t.Reset(timeout)
	return t
}

// Put stops the timer, drains a pending tick when present and returns the
// timer to the pool.
func (p *Pool) Put(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	p.pool.Put(t)
}
