package fclgraph

import (
	"strconv"
	"strings"

	"github.com/221bt/fclgraph/pkg/fclgraph/epcis"
	"github.com/221bt/fclgraph/pkg/fclgraph/fcl"
	"github.com/221bt/fclgraph/pkg/fclgraph/gs1"
)

// Extra columns the emitter fills beyond the fixed base schema.
var (
	stationExtraColumns = []fcl.Column{
		{ID: "Address", Type: "string"},
		{ID: "Country", Type: "string"},
		{ID: "Role", Type: "string"},
	}
	deliveryExtraColumns = []fcl.Column{
		{ID: "Name", Type: "string"},
		{ID: "Lot ID", Type: "string"},
		{ID: "Date Delivery Arrival", Type: "string"},
		{ID: "Amount", Type: "string"},
		{ID: "Event Type", Type: "string"},
	}
)

// emit walks a collapsed graph and produces the output builder: one
// station per Location vocabulary element, one delivery per quantity item
// on each parent→child edge, and one delivery relation per pair of
// deliveries meeting at a shared hand-off event.
func emit(g *Graph, doc *epcis.Document, o *options) (*fcl.Output, error) {
	out := fcl.New()
	out.AddStationColumns(stationExtraColumns...)
	out.AddDeliveryColumns(deliveryExtraColumns...)
	for _, m := range o.stationMappings {
		out.AddStationColumns(m.column)
	}
	for _, m := range o.deliveryMappings {
		out.AddDeliveryColumns(m.column)
	}

	for _, loc := range doc.Locations() {
		if out.HasStation(loc.ID) {
			continue
		}
		station := out.AddStation(loc.ID, loc.Name, loc.Lat, loc.Lng)
		station.AddAttribute("Address", joinAddress(loc.Address, loc.City, loc.State))
		station.AddAttribute("Country", loc.Country)
		if role, ok := loc.AttributeByLocalName("role"); ok {
			station.AddAttribute("Role", role)
		}
		for _, m := range o.stationMappings {
			if value, ok := loc.AttributeByLocalName(m.attribute); ok {
				station.AddAttribute(m.column.ID, value)
			}
		}
	}

	// Deliveries keyed by the parent event id; relations need them after
	// every edge has been walked.
	eventDeliveries := make(map[string][]string)
	type pendingRelation struct {
		fromEvent string
		toEvent   string
	}
	var pending []pendingRelation

	for _, event := range g.Events() {
		for _, childID := range g.Children(event.ID) {
			child, ok := g.Event(childID)
			if !ok {
				return nil, &EventError{EventID: event.ID, Op: "emit", Err: ErrUnknownPredecessor}
			}
			if event.BizLocation == "" {
				return nil, &EventError{EventID: event.ID, Op: "emit", Err: ErrMissingLocation}
			}
			if child.BizLocation == "" {
				return nil, &EventError{EventID: child.ID, Op: "emit", Err: ErrMissingLocation}
			}

			for _, item := range event.QuantitySource() {
				product, lot, err := gs1.ParseClassIdentifier(item.EPCClass)
				if err != nil {
					return nil, &EventError{EventID: event.ID, Op: "emit", Err: err}
				}

				deliveryID := o.newID()
				eventDeliveries[event.ID] = append(eventDeliveries[event.ID], deliveryID)

				delivery := out.AddDelivery(deliveryID, event.BizLocation, child.BizLocation)
				delivery.AddAttribute("Name", product)
				delivery.AddAttribute("Lot ID", lot)
				delivery.AddAttribute("Date Delivery Arrival", event.EventTime)
				delivery.AddAttribute("Amount", formatAmount(item.Quantity, item.UOM))
				delivery.AddAttribute("Event Type", string(event.Kind))
				for _, m := range o.deliveryMappings {
					if ext, ok := event.Extension(m.extension); ok {
						if values := ext.Values(); len(values) > 0 {
							delivery.AddAttribute(m.column.ID, values[0])
						}
					}
				}
			}

			// The hand-off continues past the child only if the child
			// itself ships onward.
			if len(g.Children(childID)) > 0 {
				pending = append(pending, pendingRelation{fromEvent: event.ID, toEvent: childID})
			}
		}
	}

	for _, rel := range pending {
		for _, fromID := range eventDeliveries[rel.fromEvent] {
			for _, toID := range eventDeliveries[rel.toEvent] {
				out.AddDeliveryRelation(fromID, toID)
			}
		}
	}

	return out, nil
}

// joinAddress joins the non-empty street, city and state parts with commas.
func joinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}

// formatAmount renders a quantity and its unit of measure as one cell,
// e.g. "300 KGM". Whole quantities drop the fractional part.
func formatAmount(quantity float64, uom string) string {
	s := strconv.FormatFloat(quantity, 'f', -1, 64)
	if uom == "" {
		return s
	}
	return s + " " + uom
}
