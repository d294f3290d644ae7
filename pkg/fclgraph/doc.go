/*
Package fclgraph converts EPCIS supply-chain event documents into the FCL
traceability graph format: stations, deliveries and delivery relations.

# Overview

An EPCIS document records what happened to physical goods (commissioning,
packing, shipping, transformation) as a flat list of events. Events are
chained together by a document-defined tracking extension naming the
event(s) each one continues from. This package rebuilds that chain as an
explicit graph, collapses pure repackaging steps out of it, and walks the
result to emit one delivery per product class moved along each edge.

# Pipeline

	doc, err := epcis.Decode(data)
	out, err := fclgraph.Convert(ctx, doc, fclgraph.DefaultTrackingKey)
	result, err := json.Marshal(out)

ConvertJSON additionally handles the wire formats on both ends. BuildGraph
and Graph.Collapse are exported for callers that need the intermediate
event graph.

# Collapsing

Aggregation events describe repackaging with no independent product
movement. Collapse removes every Aggregation event and re-attaches its
children to each of its own predecessors, so the emitter only ever walks
edges that represent a real location-to-location transfer. An Aggregation
event without a tracking predecessor has no re-attachment point; its
children lose their incoming edge and continue as roots.

# Deliveries

Each graph edge E→C yields one delivery per quantity item of E's
kind-dependent quantity source, from E's business location to C's. When C
itself hands goods further on, every delivery of E is related to every
delivery of C: a full Cartesian product at each hand-off point.
*/
package fclgraph
