package fclgraph

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/221bt/fclgraph/pkg/fclgraph/fcl"
	"github.com/221bt/fclgraph/pkg/fclgraph/observability"
)

// Default namespaced attribute carrying predecessor event ids.
const DefaultTrackingKey = "example:prevID"

// stationMapping projects a master-data attribute onto a station column.
type stationMapping struct {
	column fcl.Column
	// local name of the vocabulary attribute supplying the value.
	attribute string
}

// deliveryMapping projects an event extension onto a delivery column.
type deliveryMapping struct {
	column fcl.Column
	// namespace-qualified extension name supplying the value.
	extension string
}

type options struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	newID   func() string

	stationMappings  []stationMapping
	deliveryMappings []deliveryMapping
}

// Option configures a conversion.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		metrics: observability.NoopMetrics{},
		newID:   newDeliveryID,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger enables structured logging of the conversion lifecycle.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables conversion metrics recording.
func WithMetrics(recorder observability.MetricsRecorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithDeliveryIDFunc replaces the delivery id generator.
// Intended for deterministic ids in tests and reproducible pipelines.
func WithDeliveryIDFunc(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithStationColumn declares an extra station column filled from the
// location vocabulary attribute with the given local name.
func WithStationColumn(column fcl.Column, attributeLocalName string) Option {
	return func(o *options) {
		o.stationMappings = append(o.stationMappings, stationMapping{
			column:    column,
			attribute: attributeLocalName,
		})
	}
}

// WithDeliveryColumn declares an extra delivery column filled from the
// namespaced event extension with the given name.
func WithDeliveryColumn(column fcl.Column, extensionName string) Option {
	return func(o *options) {
		o.deliveryMappings = append(o.deliveryMappings, deliveryMapping{
			column:    column,
			extension: extensionName,
		})
	}
}

// newDeliveryID returns a fresh synthetic delivery identifier.
func newDeliveryID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
