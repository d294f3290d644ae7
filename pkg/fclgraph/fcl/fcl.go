package fcl

// Version is the FCL data-format version emitted in the output.
const Version = "1.0.0"

// Column declares one attribute of a node or edge table.
type Column struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Cell is one attribute value of an output row.
type Cell struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// Row is an ordered list of cells filtered to a table's declared columns.
type Row []Cell

// Table is one labeled output table: its column schema plus row data.
type Table struct {
	ColumnProperties []Column `json:"columnProperties"`
	Data             []Row    `json:"data"`
}

// Document is the outer FCL wire structure.
type Document struct {
	Version string `json:"version"`
	Data    Data   `json:"data"`
}

// Data carries the three traceability tables.
type Data struct {
	Version           string `json:"version"`
	Stations          Table  `json:"stations"`
	Deliveries        Table  `json:"deliveries"`
	DeliveryRelations Table  `json:"deliveryRelations"`
}

// Node is a station or delivery under construction. Attributes keep
// insertion order; output rows are filtered to the declared columns.
type Node struct {
	order  []string
	values map[string]any
}

func newNode() *Node {
	return &Node{values: make(map[string]any)}
}

// AddAttribute sets an attribute on the node. Setting an existing
// attribute replaces its value and keeps its original position.
func (n *Node) AddAttribute(id string, value any) {
	if _, exists := n.values[id]; !exists {
		n.order = append(n.order, id)
	}
	n.values[id] = value
}

// row produces the node's output row restricted to the declared columns.
func (n *Node) row(declared map[string]bool) Row {
	row := make(Row, 0, len(n.order))
	for _, id := range n.order {
		if declared[id] {
			row = append(row, Cell{ID: id, Value: n.values[id]})
		}
	}
	return row
}

// Output is a mutable builder for an FCL document.
type Output struct {
	stationColumns  []Column
	deliveryColumns []Column
	relationColumns []Column

	stations    []*Node
	stationIDs  map[string]bool
	deliveries  []*Node
	deliveryIDs map[string]bool
	relations   []*Node
}

// New creates an Output with the fixed base schema: stations carry
// ID/Name/Latitude/Longitude, deliveries ID/from/to, relations from/to.
func New() *Output {
	return &Output{
		stationColumns: []Column{
			{ID: "ID", Type: "string"},
			{ID: "Name", Type: "string"},
			{ID: "Latitude", Type: "double"},
			{ID: "Longitude", Type: "double"},
		},
		deliveryColumns: []Column{
			{ID: "ID", Type: "string"},
			{ID: "from", Type: "string"},
			{ID: "to", Type: "string"},
		},
		relationColumns: []Column{
			{ID: "from", Type: "string"},
			{ID: "to", Type: "string"},
		},
		stationIDs:  make(map[string]bool),
		deliveryIDs: make(map[string]bool),
	}
}

// AddStationColumns declares additional station columns.
func (o *Output) AddStationColumns(columns ...Column) {
	o.stationColumns = append(o.stationColumns, columns...)
}

// AddDeliveryColumns declares additional delivery columns.
func (o *Output) AddDeliveryColumns(columns ...Column) {
	o.deliveryColumns = append(o.deliveryColumns, columns...)
}

// HasStation reports whether a station with the id was already added.
func (o *Output) HasStation(id string) bool {
	return o.stationIDs[id]
}

// AddStation adds a station node. Adding an id twice replaces nothing;
// the original node is returned so attributes accumulate on it.
func (o *Output) AddStation(id, name string, lat, lng float64) *Node {
	if o.stationIDs[id] {
		for _, n := range o.stations {
			if n.values["ID"] == id {
				return n
			}
		}
	}
	node := newNode()
	node.AddAttribute("ID", id)
	node.AddAttribute("Name", name)
	node.AddAttribute("Latitude", lat)
	node.AddAttribute("Longitude", lng)
	o.stations = append(o.stations, node)
	o.stationIDs[id] = true
	return node
}

// AddDelivery adds one unit-of-movement between two stations.
func (o *Output) AddDelivery(id, fromStation, toStation string) *Node {
	node := newNode()
	node.AddAttribute("ID", id)
	node.AddAttribute("from", fromStation)
	node.AddAttribute("to", toStation)
	o.deliveries = append(o.deliveries, node)
	o.deliveryIDs[id] = true
	return node
}

// AddDeliveryRelation links two deliveries at a hand-off point.
func (o *Output) AddDeliveryRelation(fromDelivery, toDelivery string) {
	node := newNode()
	node.AddAttribute("from", fromDelivery)
	node.AddAttribute("to", toDelivery)
	o.relations = append(o.relations, node)
}

// StationCount returns the number of stations added so far.
func (o *Output) StationCount() int { return len(o.stations) }

// DeliveryCount returns the number of deliveries added so far.
func (o *Output) DeliveryCount() int { return len(o.deliveries) }

// RelationCount returns the number of delivery relations added so far.
func (o *Output) RelationCount() int { return len(o.relations) }

// Generate assembles the final document. Rows are filtered to the
// declared columns of their table, preserving node insertion order.
func (o *Output) Generate() *Document {
	return &Document{
		Version: Version,
		Data: Data{
			Version:           Version,
			Stations:          buildTable(o.stationColumns, o.stations),
			Deliveries:        buildTable(o.deliveryColumns, o.deliveries),
			DeliveryRelations: buildTable(o.relationColumns, o.relations),
		},
	}
}

func buildTable(columns []Column, nodes []*Node) Table {
	declared := make(map[string]bool, len(columns))
	for _, c := range columns {
		declared[c.ID] = true
	}
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, n.row(declared))
	}
	return Table{ColumnProperties: columns, Data: rows}
}
