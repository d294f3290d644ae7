// Package observability provides structured logging, metrics and tracing
// for EPCIS-to-FCL conversions.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds document context to a logger.
func EnrichLogger(logger *slog.Logger, documentID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("document_id", documentID))
}

// LogConvertStart logs the start of a document conversion.
func LogConvertStart(logger *slog.Logger, eventCount int) {
	if logger == nil {
		return
	}
	logger.Info("conversion starting",
		slog.Int("events", eventCount),
	)
}

// LogGraphCollapsed logs the result of the graph collapse pass.
func LogGraphCollapsed(logger *slog.Logger, before, after int) {
	if logger == nil {
		return
	}
	logger.Debug("aggregation events collapsed",
		slog.Int("events_before", before),
		slog.Int("events_after", after),
	)
}

// LogConvertComplete logs successful conversion completion.
func LogConvertComplete(logger *slog.Logger, durationMs float64, stations, deliveries, relations int) {
	if logger == nil {
		return
	}
	logger.Info("conversion completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("stations", stations),
		slog.Int("deliveries", deliveries),
		slog.Int("delivery_relations", relations),
	)
}

// LogConvertError logs conversion failure.
func LogConvertError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("conversion failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
