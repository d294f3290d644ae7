package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()

	// All methods must be safe no-ops.
	m.RecordConversion(ctx, 10*time.Millisecond, nil)
	m.RecordConversion(ctx, 10*time.Millisecond, errors.New("boom"))
	m.RecordEvents(ctx, "ObjectEvent", 3)
	m.RecordOutput(ctx, 1, 2, 3)
}
