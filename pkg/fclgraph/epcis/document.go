package epcis

import (
	"errors"
	"fmt"
)

// Sentinel errors for document handling.
var (
	// ErrDecode indicates the wire document could not be decoded into the model.
	ErrDecode = errors.New("malformed EPCIS document")

	// ErrInvalidEvent indicates an event violates a structural business rule.
	ErrInvalidEvent = errors.New("invalid EPCIS event")

	// ErrDuplicateEvent indicates two events share an identifier.
	ErrDuplicateEvent = errors.New("duplicate event id")
)

// Document is an in-memory EPCIS document: the event collection in
// insertion order plus the location and product vocabularies from the
// master-data header.
type Document struct {
	// ID is the optional document identifier from the wire payload.
	ID string

	// CreatedDate is the document creation timestamp, ISO 8601.
	CreatedDate string

	// Namespaces maps extension namespace prefixes to their URIs.
	Namespaces map[string]string

	events  []*Event
	eventIx map[string]*Event

	locations   map[string]*LocationNode
	locationIDs []string
	products    map[string]*ProductNode
	productIDs  []string
}

// NewDocument creates an empty document with the default cbvmda namespace.
func NewDocument() *Document {
	return &Document{
		Namespaces: map[string]string{
			"cbvmda": "urn:epcglobal:cbv:mda:",
		},
		eventIx:   make(map[string]*Event),
		locations: make(map[string]*LocationNode),
		products:  make(map[string]*ProductNode),
	}
}

// AddEvent appends an event to the document. Event identifiers must be
// unique within a document.
func (d *Document) AddEvent(event *Event) error {
	if event.ID == "" {
		return fmt.Errorf("%w: event has no id", ErrInvalidEvent)
	}
	if _, exists := d.eventIx[event.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEvent, event.ID)
	}
	d.events = append(d.events, event)
	d.eventIx[event.ID] = event
	return nil
}

// Events returns the document's events in insertion order.
// The returned slice is shared; callers must not modify it.
func (d *Document) Events() []*Event {
	return d.events
}

// Event returns the event with the given id and whether it exists.
func (d *Document) Event(id string) (*Event, bool) {
	e, ok := d.eventIx[id]
	return e, ok
}

// AddLocation registers a location vocabulary element, replacing any
// previous element with the same id.
func (d *Document) AddLocation(location *LocationNode) {
	if _, exists := d.locations[location.ID]; !exists {
		d.locationIDs = append(d.locationIDs, location.ID)
	}
	d.locations[location.ID] = location
}

// Location returns the location with the given id and whether it exists.
func (d *Document) Location(id string) (*LocationNode, bool) {
	l, ok := d.locations[id]
	return l, ok
}

// Locations returns the location vocabulary in declaration order.
func (d *Document) Locations() []*LocationNode {
	out := make([]*LocationNode, 0, len(d.locationIDs))
	for _, id := range d.locationIDs {
		out = append(out, d.locations[id])
	}
	return out
}

// AddProduct registers an EPCClass vocabulary element, replacing any
// previous element with the same id.
func (d *Document) AddProduct(product *ProductNode) {
	if _, exists := d.products[product.ID]; !exists {
		d.productIDs = append(d.productIDs, product.ID)
	}
	d.products[product.ID] = product
}

// Product returns the product with the given id and whether it exists.
func (d *Document) Product(id string) (*ProductNode, bool) {
	p, ok := d.products[id]
	return p, ok
}

// Products returns the EPCClass vocabulary in declaration order.
func (d *Document) Products() []*ProductNode {
	out := make([]*ProductNode, 0, len(d.productIDs))
	for _, id := range d.productIDs {
		out = append(out, d.products[id])
	}
	return out
}

// AddNamespace registers an extension namespace prefix.
func (d *Document) AddNamespace(prefix, uri string) {
	if d.Namespaces == nil {
		d.Namespaces = make(map[string]string)
	}
	d.Namespaces[prefix] = uri
}
