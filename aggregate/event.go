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

import "time"

// Event is an immutable fact recorded by a successful command. Events of one
// command share the same OccurredAt (the commit time) and are ordered by
// Sequence. Delivery downstream is at-least-once; consumers deduplicate on
// (AggregateID, EventType, OccurredAt, Sequence).
type Event struct {
	// AggregateID is the entity segment of the emitting identity.
	AggregateID string `json:"aggregateId"`
	// Kind is the aggregate kind of the emitting identity.
	Kind string `json:"kind"`
	// TenantID is the tenant segment of the emitting identity.
	TenantID string `json:"tenantId"`
	// EventType names the fact, e.g. "po.closed".
	EventType string `json:"eventType"`
	// Payload carries the event body. It must be JSON-serializable.
	Payload any `json:"payload"`
	// Sequence is the emission order within one command, starting at 1.
	Sequence int `json:"sequence"`
	// OccurredAt is the commit time of the command that emitted the event.
	OccurredAt time.Time `json:"occurredAt"`
}

// TenantTopic returns the stream topic carrying every event of a tenant.
func TenantTopic(tenantID string) string {
	return "events." + tenantID
}

// KindTopic returns the stream topic carrying the events of one aggregate
// kind within a tenant.
func KindTopic(tenantID, kind string) string {
	return "events." + tenantID + "." + kind
}
