package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RechargeMetrics counts workflow steps and operations. A nil receiver is a noop.
type RechargeMetrics struct {
	steps      metric.Int64Counter
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewRechargeMetrics creates the recharge instruments on the given provider.
func NewRechargeMetrics(provider metric.MeterProvider) (*RechargeMetrics, error) {
	meter := provider.Meter(instrumentationName)

	steps, err := meter.Int64Counter(
		"recharge.step.total",
		metric.WithDescription("Upstream workflow steps by outcome"),
	)
	if err != nil {
		return nil, err
	}

	operations, err := meter.Int64Counter(
		"recharge.operation.total",
		metric.WithDescription("Recharge operations by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"recharge.operation.duration",
		metric.WithDescription("Recharge operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RechargeMetrics{steps: steps, operations: operations, duration: duration}, nil
}

// RecordStep counts one upstream step. kind is the failure kind, empty on success.
func (m *RechargeMetrics) RecordStep(ctx context.Context, step string, success bool, kind string) {
	if m == nil {
		return
	}

	m.steps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.Bool("success", success),
		attribute.String("error_kind", kind),
	))
}

// RecordOperation counts one finished operation and its duration.
func (m *RechargeMetrics) RecordOperation(ctx context.Context, operation string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)

	m.operations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
