package fclgraph

import (
	"github.com/221bt/fclgraph/pkg/fclgraph/epcis"
)

// Graph is an explicit adjacency view over a document's events: the
// events themselves (never mutated) plus a separate parent→children edge
// map resolved from the tracking extension. Build one with BuildGraph,
// then call Collapse before emission.
type Graph struct {
	trackingKey string

	order    []string
	events   map[string]*epcis.Event
	children map[string][]string
}

// BuildGraph resolves the tracking extension of every event into
// parent→child edges. trackingKey is the namespace-qualified attribute
// name carrying predecessor event ids (e.g. "example:prevID"). Events
// without the extension are roots.
//
// A predecessor id that does not exist in the document is an error
// wrapping ErrUnknownPredecessor.
func BuildGraph(doc *epcis.Document, trackingKey string) (*Graph, error) {
	g := &Graph{
		trackingKey: trackingKey,
		events:      make(map[string]*epcis.Event),
		children:    make(map[string][]string),
	}
	for _, event := range doc.Events() {
		g.order = append(g.order, event.ID)
		g.events[event.ID] = event
	}
	for _, event := range doc.Events() {
		for _, parentID := range event.PredecessorIDs(trackingKey) {
			if _, ok := g.events[parentID]; !ok {
				return nil, &EventError{EventID: event.ID, Op: "link", Err: ErrUnknownPredecessor}
			}
			g.children[parentID] = append(g.children[parentID], event.ID)
		}
	}
	return g, nil
}

// Events returns the graph's events in document order.
func (g *Graph) Events() []*epcis.Event {
	out := make([]*epcis.Event, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.events[id])
	}
	return out
}

// Event returns the event with the given id and whether it exists.
func (g *Graph) Event(id string) (*epcis.Event, bool) {
	e, ok := g.events[id]
	return e, ok
}

// Children returns the child event ids of an event.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Children(id string) []string {
	return g.children[id]
}

// Len returns the number of events in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Collapse returns a new graph with every Aggregation event removed.
// Each removed event's children are spliced onto the children of each of
// its own predecessors, preserving transitive connectivity across
// repackaging steps. An Aggregation event with no predecessors has no
// splice target; its children are dropped.
//
// The receiver is left untouched: collapsing is a pure rewrite of the
// adjacency map.
func (g *Graph) Collapse() *Graph {
	children := make(map[string][]string, len(g.children))
	for id, kids := range g.children {
		children[id] = append([]string(nil), kids...)
	}

	removed := make(map[string]bool)
	for _, id := range g.order {
		event := g.events[id]
		if event.Kind != epcis.KindAggregation {
			continue
		}
		for _, parentID := range event.PredecessorIDs(g.trackingKey) {
			children[parentID] = append(children[parentID], children[id]...)
		}
		removed[id] = true
	}

	collapsed := &Graph{
		trackingKey: g.trackingKey,
		events:      make(map[string]*epcis.Event, len(g.events)-len(removed)),
		children:    make(map[string][]string),
	}
	for _, id := range g.order {
		if removed[id] {
			continue
		}
		collapsed.order = append(collapsed.order, id)
		collapsed.events[id] = g.events[id]

		kept := make([]string, 0, len(children[id]))
		for _, childID := range children[id] {
			if !removed[childID] {
				kept = append(kept, childID)
			}
		}
		if len(kept) > 0 {
			collapsed.children[id] = kept
		}
	}
	return collapsed
}
