/*
Package epcis provides the in-memory model for EPCIS 2.0 documents: the
five event kinds, location and product master data, namespaced event
extensions, and JSON codecs for the EPCIS document and query-document
wire shapes.

# Event Model

All event kinds share one Event struct tagged with a Kind. Kind-specific
fields (child EPCs, transformation input/output lists, ...) are only
populated for the kinds that carry them. QuantitySource selects the
quantity list that describes the goods an event moves:

	kind            quantity source
	Transformation  OutputQuantityList
	Aggregation     ChildQuantityList
	Association     ChildQuantityList
	all others      QuantityList

# Extensions

EPCIS events may carry arbitrary namespaced attributes ("example:prevID").
They are kept in declaration order on the event and looked up by their
full namespace:key name. PredecessorIDs resolves the tracking extension a
document uses to chain events together.

# Documents

A Document owns its events in insertion order plus the location and
product vocabularies from the EPCIS master-data header. Decode parses
both the EPCISDocument and EPCISQueryDocument JSON shapes; Encode writes
the EPCISDocument shape back out.
*/
package epcis
