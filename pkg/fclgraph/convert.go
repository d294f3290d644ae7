package fclgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/221bt/fclgraph/pkg/fclgraph/epcis"
	"github.com/221bt/fclgraph/pkg/fclgraph/fcl"
	"github.com/221bt/fclgraph/pkg/fclgraph/observability"
)

// Convert turns a decoded EPCIS document into an FCL traceability
// document. trackingKey names the namespaced extension carrying
// predecessor event ids; pass DefaultTrackingKey when the producer uses
// the stock extension.
//
// The conversion builds the event graph, collapses Aggregation events,
// and emits stations, deliveries and delivery relations.
func Convert(ctx context.Context, doc *epcis.Document, trackingKey string, opts ...Option) (*fcl.Document, error) {
	o := applyOptions(opts)
	if doc.ID != "" {
		o.logger = observability.EnrichLogger(o.logger, doc.ID)
	}
	start := time.Now()

	events := doc.Events()
	ctx, span := observability.StartConvertSpan(ctx, doc.ID, len(events))
	observability.LogConvertStart(o.logger, len(events))

	out, err := convert(ctx, doc, trackingKey, o)

	elapsed := time.Since(start)
	o.metrics.RecordConversion(ctx, elapsed, err)
	observability.EndSpanWithError(span, err)
	if err != nil {
		observability.LogConvertError(o.logger, err, float64(elapsed.Milliseconds()))
		return nil, err
	}
	return out, nil
}

func convert(ctx context.Context, doc *epcis.Document, trackingKey string, o *options) (*fcl.Document, error) {
	elapsed := observability.TimedOperation()

	byKind := make(map[string]int64)
	for _, event := range doc.Events() {
		byKind[string(event.Kind)]++
	}
	for kind, count := range byKind {
		o.metrics.RecordEvents(ctx, kind, count)
	}

	graph, err := BuildGraph(doc, trackingKey)
	if err != nil {
		return nil, fmt.Errorf("building event graph: %w", err)
	}

	collapsed := graph.Collapse()
	observability.LogGraphCollapsed(o.logger, graph.Len(), collapsed.Len())

	out, err := emit(collapsed, doc, o)
	if err != nil {
		return nil, fmt.Errorf("emitting traceability graph: %w", err)
	}

	o.metrics.RecordOutput(ctx,
		int64(out.StationCount()), int64(out.DeliveryCount()), int64(out.RelationCount()))
	observability.LogConvertComplete(o.logger, elapsed(),
		out.StationCount(), out.DeliveryCount(), out.RelationCount())

	return out.Generate(), nil
}

// ConvertJSON decodes an EPCIS JSON document and returns the FCL output
// as JSON. It accepts both EPCISDocument and EPCISQueryDocument payloads.
func ConvertJSON(ctx context.Context, data []byte, trackingKey string, opts ...Option) ([]byte, error) {
	doc, err := epcis.Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := Convert(ctx, doc, trackingKey, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
