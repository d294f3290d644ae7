/*
Package fcl assembles the FCL (FoodChain-Lab) output structure: three
labeled tables (stations, deliveries and deliveryRelations), each
carrying an explicit column schema followed by row data.

Rows are column-filter-driven: a node may carry any number of attributes,
but only those matching a declared column appear in the output, in the
node's attribute insertion order. Consumers extend the output by declaring
additional columns; no changes to row generation are needed.

	out := fcl.New()
	out.AddStationColumns(
	    fcl.Column{ID: "Role", Type: "string"},
	)
	station := out.AddStation("loc-1", "Mill", 53.14, 8.21)
	station.AddAttribute("Role", "Producer")
	data, err := json.Marshal(out.Generate())
*/
package fcl
