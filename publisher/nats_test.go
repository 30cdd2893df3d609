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

package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holonhq/holon/aggregate"
)

func startNatsServer(t *testing.T) *natsserver.Server {
	t.Helper()
	serv, err := natsserver.NewServer(&natsserver.Options{
		Host: "127.0.0.1",
		Port: -1,
	})
	require.NoError(t, err)

	ready := make(chan bool)
	go func() {
		ready <- true
		serv.Start()
	}()
	<-ready

	if !serv.ReadyForConnections(2 * time.Second) {
		t.Fatalf("nats server failed to start")
	}
	return serv
}

func TestNATSPublisher(t *testing.T) {
	t.Run("With an event delivered as JSON", func(t *testing.T) {
		serv := startNatsServer(t)
		defer serv.Shutdown()

		conn, err := nats.Connect(serv.ClientURL())
		require.NoError(t, err)

		subscriberConn, err := nats.Connect(serv.ClientURL())
		require.NoError(t, err)
		defer subscriberConn.Close()

		sub, err := subscriberConn.SubscribeSync("holon.events.acme.purchaseorder")
		require.NoError(t, err)
		require.NoError(t, subscriberConn.Flush())

		pub := NewNATS(conn, "holon.events")
		assert.Equal(t, "nats", pub.ID())

		event := aggregate.Event{
			AggregateID: "po-1",
			Kind:        "purchaseorder",
			TenantID:    "acme",
			EventType:   "po.created",
			Sequence:    1,
			OccurredAt:  time.Now().UTC(),
		}
		require.NoError(t, pub.Publish(context.TODO(), event))

		msg, err := sub.NextMsg(2 * time.Second)
		require.NoError(t, err)

		var received aggregate.Event
		require.NoError(t, json.Unmarshal(msg.Data, &received))
		assert.Equal(t, "po-1", received.AggregateID)
		assert.Equal(t, "po.created", received.EventType)
		assert.Equal(t, "acme", received.TenantID)

		require.NoError(t, pub.Close())
	})
	t.Run("With subjects split per tenant and kind", func(t *testing.T) {
		serv := startNatsServer(t)
		defer serv.Shutdown()

		conn, err := nats.Connect(serv.ClientURL())
		require.NoError(t, err)

		subscriberConn, err := nats.Connect(serv.ClientURL())
		require.NoError(t, err)
		defer subscriberConn.Close()

		acmeOnly, err := subscriberConn.SubscribeSync("holon.events.acme.>")
		require.NoError(t, err)
		require.NoError(t, subscriberConn.Flush())

		pub := NewNATS(conn, "holon.events")
		require.NoError(t, pub.Publish(context.TODO(), aggregate.Event{
			AggregateID: "wo-1", Kind: "workorder", TenantID: "globex", EventType: "wo.created",
		}))
		require.NoError(t, pub.Publish(context.TODO(), aggregate.Event{
			AggregateID: "po-9", Kind: "purchaseorder", TenantID: "acme", EventType: "po.created",
		}))

		msg, err := acmeOnly.NextMsg(2 * time.Second)
		require.NoError(t, err)
		assert.Equal(t, "holon.events.acme.purchaseorder", msg.Subject)

		_, err = acmeOnly.NextMsg(200 * time.Millisecond)
		assert.Error(t, err)

		require.NoError(t, pub.Close())
	})
}
