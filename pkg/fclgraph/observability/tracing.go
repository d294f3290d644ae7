package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the fclgraph tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("fclgraph")

// StartConvertSpan starts a span for a document conversion.
// Uses the global OTel tracer.
func StartConvertSpan(ctx context.Context, documentID string, eventCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fclgraph.convert",
		trace.WithAttributes(
			attribute.String("document.id", documentID),
			attribute.Int("document.events", eventCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartPhaseSpan starts a span for one conversion phase (decode, build, collapse, emit).
// The phase span should be a child of the convert span.
func StartPhaseSpan(ctx context.Context, phase string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fclgraph.phase."+phase,
		trace.WithAttributes(
			attribute.String("phase", phase),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
