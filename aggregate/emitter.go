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
	"context"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/holonhq/holon/eventstream"
	"github.com/holonhq/holon/internal/queue"
	"github.com/holonhq/holon/log"
)

// Publisher delivers committed domain events to an external system. The
// runtime retries failed publishes a few times, then logs and drops; the
// in-process broker has already delivered, so consumers must be idempotent
// on (AggregateID, EventType, OccurredAt, Sequence).
type Publisher interface {
	// ID identifies the publisher in logs.
	ID() string
	// Publish delivers one event.
	Publish(ctx context.Context, event Event) error
	// Close flushes and releases the underlying connection.
	Close() error
}

const (
	publishMaxRetries   = 3
	publishInitialDelay = 50 * time.Millisecond
	publishMaxDelay     = time.Second
)

// emitter decouples event fan-out from the aggregate processing loops.
// Events of committed commands are queued here and drained by a single
// goroutine that broadcasts each event on the tenant and kind topics of the
// in-process broker, then hands it to every external publisher.
type emitter struct {
	events     *queue.Queue[Event]
	stream     eventstream.Stream
	publishers []Publisher
	logger     log.Logger
	stopped    chan struct{}
}

func newEmitter(stream eventstream.Stream, publishers []Publisher, logger log.Logger) *emitter {
	return &emitter{
		events:     queue.New[Event](),
		stream:     stream,
		publishers: publishers,
		logger:     logger,
		stopped:    make(chan struct{}),
	}
}

func (e *emitter) start() {
	go e.run()
}

// emit hands the events of one committed command to the fan-out goroutine.
// It never blocks the processing loop.
func (e *emitter) emit(events []Event) {
	for _, event := range events {
		e.events.Push(event)
	}
}

func (e *emitter) run() {
	defer close(e.stopped)
	for {
		event, ok := e.events.Wait()
		if !ok {
			return
		}
		e.dispatch(context.Background(), event)
	}
}

// stop drains the queue and dispatches whatever was still buffered, so no
// committed event is lost to shutdown.
func (e *emitter) stop(ctx context.Context) {
	remaining := e.events.CloseRemaining()
	<-e.stopped
	for _, event := range remaining {
		e.dispatch(ctx, event)
	}
}

func (e *emitter) dispatch(ctx context.Context, event Event) {
	e.stream.Broadcast(event, []string{
		TenantTopic(event.TenantID),
		KindTopic(event.TenantID, event.Kind),
	})

	for _, pub := range e.publishers {
		retrier := retry.NewRetrier(publishMaxRetries, publishInitialDelay, publishMaxDelay)
		err := retrier.RunContext(ctx, func(ctx context.Context) error {
			return pub.Publish(ctx, event)
		})
		if err != nil {
			e.logger.Errorf("publisher %s dropped event %s/%s seq=%d: %v",
				pub.ID(), event.AggregateID, event.EventType, event.Sequence, err)
		}
	}
}
