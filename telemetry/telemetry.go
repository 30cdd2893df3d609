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

// Package telemetry wires the runtime's OpenTelemetry meter instruments.
// Every method is safe on a nil receiver so the hot path never has to check
// whether metrics were configured.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
)

// Metrics bundles the instruments the runtime records into.
type Metrics struct {
	meter         metric.Meter
	commands      metric.Int64Counter
	duration      metric.Float64Histogram
	activations   metric.Int64Counter
	deactivations metric.Int64Counter
	resident      metric.Int64ObservableGauge
}

// New creates the runtime instruments on the given meter.
func New(meter metric.Meter) (*Metrics, error) {
	var errs error

	commands, err := meter.Int64Counter(
		"holon.commands.total",
		metric.WithDescription("Number of handled commands by kind, command and outcome"))
	errs = multierr.Append(errs, err)

	duration, err := meter.Float64Histogram(
		"holon.command.duration",
		metric.WithDescription("Command handling duration"),
		metric.WithUnit("ms"))
	errs = multierr.Append(errs, err)

	activations, err := meter.Int64Counter(
		"holon.aggregates.activations.total",
		metric.WithDescription("Number of aggregate activations by kind"))
	errs = multierr.Append(errs, err)

	deactivations, err := meter.Int64Counter(
		"holon.aggregates.deactivations.total",
		metric.WithDescription("Number of aggregate deactivations by kind"))
	errs = multierr.Append(errs, err)

	if errs != nil {
		return nil, errs
	}

	return &Metrics{
		meter:         meter,
		commands:      commands,
		duration:      duration,
		activations:   activations,
		deactivations: deactivations,
	}, nil
}

// RegisterResident registers the resident-process gauge. The callback is
// sampled on every metric collection.
func (m *Metrics) RegisterResident(callback func() int64) error {
	if m == nil {
		return nil
	}
	resident, err := m.meter.Int64ObservableGauge(
		"holon.aggregates.resident",
		metric.WithDescription("Number of resident aggregate processes"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(callback())
			return nil
		}))
	if err != nil {
		return err
	}
	m.resident = resident
	return nil
}

// RecordCommand records one handled command with its outcome and duration.
func (m *Metrics) RecordCommand(ctx context.Context, kind, command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("command", command),
		attribute.String("outcome", outcome))
	m.commands.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}

// RecordActivation counts one aggregate activation.
func (m *Metrics) RecordActivation(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.activations.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordDeactivation counts one aggregate deactivation.
func (m *Metrics) RecordDeactivation(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.deactivations.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
