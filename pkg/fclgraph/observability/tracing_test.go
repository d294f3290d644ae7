package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("fclgraph")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartConvertSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx := context.Background()
	_, span := StartConvertSpan(ctx, "doc-1", 7)
	require.NotNil(t, span)

	// End the span to flush it to the exporter
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "fclgraph.convert", s.Name)

	var docID string
	var events int64
	for _, attr := range s.Attributes {
		switch attr.Key {
		case "document.id":
			docID = attr.Value.AsString()
		case "document.events":
			events = attr.Value.AsInt64()
		}
	}
	assert.Equal(t, "doc-1", docID)
	assert.Equal(t, int64(7), events)
}

func TestStartPhaseSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx := context.Background()
	_, span := StartPhaseSpan(ctx, "collapse")
	require.NotNil(t, span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "fclgraph.phase.collapse", spans[0].Name)
}

func TestEndSpanWithError(t *testing.T) {
	t.Run("records error status", func(t *testing.T) {
		exporter, cleanup := setupTracingTest(t)
		defer cleanup()

		_, span := StartPhaseSpan(context.Background(), "emit")
		EndSpanWithError(span, errors.New("missing location"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("records ok status on success", func(t *testing.T) {
		exporter, cleanup := setupTracingTest(t)
		defer cleanup()

		_, span := StartPhaseSpan(context.Background(), "emit")
		EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		EndSpanWithError(nil, errors.New("ignored"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, span := StartConvertSpan(context.Background(), "doc-2", 1)
	AddSpanEvent(ctx, "graph.collapsed", attribute.Int("removed", 2))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "graph.collapsed", spans[0].Events[0].Name)

	// No span in context: must be a no-op.
	AddSpanEvent(context.Background(), "ignored")
}
