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

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestMetrics(t *testing.T) {
	t.Run("With instruments on a noop meter", func(t *testing.T) {
		metrics, err := New(noop.NewMeterProvider().Meter("test"))
		require.NoError(t, err)
		require.NotNil(t, metrics)

		require.NoError(t, metrics.RegisterResident(func() int64 { return 1 }))
		metrics.RecordCommand(context.TODO(), "purchaseorder", "Submit", "ok", time.Millisecond)
		metrics.RecordActivation(context.TODO(), "purchaseorder")
		metrics.RecordDeactivation(context.TODO(), "purchaseorder")
	})
	t.Run("With a nil receiver", func(t *testing.T) {
		var metrics *Metrics
		require.NoError(t, metrics.RegisterResident(func() int64 { return 0 }))
		metrics.RecordCommand(context.TODO(), "purchaseorder", "Submit", "ok", time.Millisecond)
		metrics.RecordActivation(context.TODO(), "purchaseorder")
		metrics.RecordDeactivation(context.TODO(), "purchaseorder")
	})
}
