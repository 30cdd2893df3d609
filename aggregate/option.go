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
	"time"

	"github.com/holonhq/holon/log"
	"github.com/holonhq/holon/passivation"
	"github.com/holonhq/holon/persistence"
	"github.com/holonhq/holon/quota"
	"github.com/holonhq/holon/telemetry"
)

// Option configures the runtime at construction time.
type Option func(*Runtime)

// WithLogger sets the runtime logger.
func WithLogger(logger log.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithStateStore sets the snapshot store. Defaults to the in-memory store.
func WithStateStore(store persistence.StateStore) Option {
	return func(rt *Runtime) {
		rt.store = store
	}
}

// WithPublishers registers external event publishers. The in-process broker
// always receives events; publishers are additional at-least-once deliveries.
func WithPublishers(publishers ...Publisher) Option {
	return func(rt *Runtime) {
		rt.publishers = append(rt.publishers, publishers...)
	}
}

// WithPassivation sets the passivation strategy. Defaults to time-based with
// a two-minute idle window.
func WithPassivation(strategy passivation.Strategy) Option {
	return func(rt *Runtime) {
		rt.strategy = strategy
	}
}

// WithAskTimeout bounds how long Execute waits for a reply.
func WithAskTimeout(timeout time.Duration) Option {
	return func(rt *Runtime) {
		if timeout > 0 {
			rt.askTimeout = timeout
		}
	}
}

// WithCommandQuota caps the command rate per caller tenant. Over-limit
// commands are rejected with RateLimited before any dispatch.
func WithCommandQuota(limiter quota.Limiter, limit int, window time.Duration) Option {
	return func(rt *Runtime) {
		rt.quota = limiter
		rt.quotaLimit = limit
		rt.quotaWindow = window
	}
}

// WithBoundedMailbox replaces the default unbounded mailbox with a bounded
// one of the given capacity. Producers block while the mailbox is full.
func WithBoundedMailbox(capacity int) Option {
	return func(rt *Runtime) {
		rt.mailboxCapacity = capacity
	}
}

// WithMetrics wires the telemetry instruments.
func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = metrics
	}
}
