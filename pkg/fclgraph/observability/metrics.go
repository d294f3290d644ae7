package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records conversion metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordConversion records a document conversion with its duration and error status.
	RecordConversion(ctx context.Context, duration time.Duration, err error)

	// RecordEvents records the number of events processed, by event type.
	RecordEvents(ctx context.Context, eventType string, count int64)

	// RecordOutput records the size of a generated traceability graph.
	RecordOutput(ctx context.Context, stations, deliveries, relations int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	conversions       metric.Int64Counter
	conversionLatency metric.Float64Histogram
	conversionErrors  metric.Int64Counter
	eventsProcessed   metric.Int64Counter
	outputStations    metric.Int64Counter
	outputDeliveries  metric.Int64Counter
	outputRelations   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("fclgraph")

	conversions, err := meter.Int64Counter("fclgraph.conversions",
		metric.WithDescription("Number of document conversions"),
	)
	if err != nil {
		return nil, err
	}

	conversionLatency, err := meter.Float64Histogram("fclgraph.conversion.latency_ms",
		metric.WithDescription("Document conversion latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	conversionErrors, err := meter.Int64Counter("fclgraph.conversion.errors",
		metric.WithDescription("Number of failed document conversions"),
	)
	if err != nil {
		return nil, err
	}

	eventsProcessed, err := meter.Int64Counter("fclgraph.events.processed",
		metric.WithDescription("Number of EPCIS events processed"),
	)
	if err != nil {
		return nil, err
	}

	outputStations, err := meter.Int64Counter("fclgraph.output.stations",
		metric.WithDescription("Number of stations emitted"),
	)
	if err != nil {
		return nil, err
	}

	outputDeliveries, err := meter.Int64Counter("fclgraph.output.deliveries",
		metric.WithDescription("Number of deliveries emitted"),
	)
	if err != nil {
		return nil, err
	}

	outputRelations, err := meter.Int64Counter("fclgraph.output.delivery_relations",
		metric.WithDescription("Number of delivery relations emitted"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		conversions:       conversions,
		conversionLatency: conversionLatency,
		conversionErrors:  conversionErrors,
		eventsProcessed:   eventsProcessed,
		outputStations:    outputStations,
		outputDeliveries:  outputDeliveries,
		outputRelations:   outputRelations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordConversion records a document conversion.
func (m *otelMetrics) RecordConversion(ctx context.Context, duration time.Duration, err error) {
	m.conversions.Add(ctx, 1)
	m.conversionLatency.Record(ctx, float64(duration.Milliseconds()))

	if err != nil {
		m.conversionErrors.Add(ctx, 1)
	}
}

// RecordEvents records processed events by type.
func (m *otelMetrics) RecordEvents(ctx context.Context, eventType string, count int64) {
	m.eventsProcessed.Add(ctx, count, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}

// RecordOutput records the size of the generated output.
func (m *otelMetrics) RecordOutput(ctx context.Context, stations, deliveries, relations int64) {
	m.outputStations.Add(ctx, stations)
	m.outputDeliveries.Add(ctx, deliveries)
	m.outputRelations.Add(ctx, relations)
}
