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

// Package publisher carries committed domain events out of the process.
// Delivery is at-least-once: the runtime retries failed publishes, so
// consumers must deduplicate on (AggregateID, EventType, OccurredAt,
// Sequence).
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/holonhq/holon/aggregate"
)

// NATS publishes events as JSON envelopes on core NATS subjects of the form
// <prefix>.<tenant>.<kind>.
type NATS struct {
	conn          *nats.Conn
	subjectPrefix string
}

var _ aggregate.Publisher = (*NATS)(nil)

// NewNATS creates a publisher on top of an existing connection. The prefix
// roots the subject hierarchy, e.g. "holon.events".
func NewNATS(conn *nats.Conn, subjectPrefix string) *NATS {
	return &NATS{
		conn:          conn,
		subjectPrefix: subjectPrefix,
	}
}

// ID identifies the publisher in logs.
func (p *NATS) ID() string {
	return "nats"
}

// Publish delivers one event.
func (p *NATS) Publish(_ context.Context, event aggregate.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s/%s: %w", event.AggregateID, event.EventType, err)
	}
	subject := fmt.Sprintf("%s.%s.%s", p.subjectPrefix, event.TenantID, event.Kind)
	return p.conn.Publish(subject, data)
}

// Close flushes pending publishes and closes the connection.
func (p *NATS) Close() error {
	if err := p.conn.Flush(); err != nil {
		p.conn.Close()
		return err
	}
	p.conn.Close()
	return nil
}
