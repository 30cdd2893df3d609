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

package eventstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsStream(t *testing.T) {
	t.Run("With subscribe and publish", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "events.acme")
		require.Equal(t, 1, broker.SubscribersCount("events.acme"))

		broker.Publish("events.acme", "first")
		broker.Publish("events.acme", "second")

		var payloads []any
		for message := range sub.Iterator() {
			assert.Equal(t, "events.acme", message.Topic)
			payloads = append(payloads, message.Payload)
		}
		assert.Equal(t, []any{"first", "second"}, payloads)
		broker.Close()
	})
	t.Run("With broadcast to multiple topics", func(t *testing.T) {
		broker := New()
		tenantSub := broker.AddSubscriber()
		kindSub := broker.AddSubscriber()
		broker.Subscribe(tenantSub, "events.acme")
		broker.Subscribe(kindSub, "events.acme.purchaseorder")

		broker.Broadcast("po.created", []string{"events.acme", "events.acme.purchaseorder"})

		require.Len(t, tenantSub.Iterator(), 1)
		require.Len(t, kindSub.Iterator(), 1)
		broker.Close()
	})
	t.Run("With unsubscribe stopping delivery", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "events.acme")
		broker.Unsubscribe(sub, "events.acme")
		require.Zero(t, broker.SubscribersCount("events.acme"))

		broker.Publish("events.acme", "ignored")
		assert.Empty(t, sub.Iterator())
		broker.Close()
	})
	t.Run("With removed subscriber inactive", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "events.acme")
		broker.RemoveSubscriber(sub)

		assert.False(t, sub.Active())
		assert.Empty(t, sub.Topics())
		broker.Publish("events.acme", "ignored")
		assert.Empty(t, sub.Iterator())
		broker.Close()
	})
	t.Run("With inactive subscriber refusing subscriptions", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		sub.Shutdown()
		broker.Subscribe(sub, "events.acme")
		assert.Zero(t, broker.SubscribersCount("events.acme"))
		broker.Close()
	})
}
