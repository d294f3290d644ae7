package observability

import (
	"context"
	"time"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordConversion does nothing.
func (NoopMetrics) RecordConversion(_ context.Context, _ time.Duration, _ error) {}

// RecordEvents does nothing.
func (NoopMetrics) RecordEvents(_ context.Context, _ string, _ int64) {}

// RecordOutput does nothing.
func (NoopMetrics) RecordOutput(_ context.Context, _, _, _ int64) {}
