package fcl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOutput_BaseSchema verifies the fixed base columns of each table.
func TestOutput_BaseSchema(t *testing.T) {
	doc := New().Generate()

	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, Version, doc.Data.Version)

	assert.Equal(t, []Column{
		{ID: "ID", Type: "string"},
		{ID: "Name", Type: "string"},
		{ID: "Latitude", Type: "double"},
		{ID: "Longitude", Type: "double"},
	}, doc.Data.Stations.ColumnProperties)

	assert.Equal(t, []Column{
		{ID: "ID", Type: "string"},
		{ID: "from", Type: "string"},
		{ID: "to", Type: "string"},
	}, doc.Data.Deliveries.ColumnProperties)

	assert.Equal(t, []Column{
		{ID: "from", Type: "string"},
		{ID: "to", Type: "string"},
	}, doc.Data.DeliveryRelations.ColumnProperties)

	assert.Empty(t, doc.Data.Stations.Data)
	assert.Empty(t, doc.Data.Deliveries.Data)
	assert.Empty(t, doc.Data.DeliveryRelations.Data)
}

// TestOutput_ColumnFiltering verifies rows only carry declared columns,
// in attribute insertion order.
func TestOutput_ColumnFiltering(t *testing.T) {
	out := New()
	out.AddStationColumns(Column{ID: "Role", Type: "string"})

	station := out.AddStation("loc-1", "Mill", 53.14, 8.21)
	station.AddAttribute("Role", "Producer")
	station.AddAttribute("Undeclared", "dropped")

	doc := out.Generate()
	require.Len(t, doc.Data.Stations.Data, 1)
	assert.Equal(t, Row{
		{ID: "ID", Value: "loc-1"},
		{ID: "Name", Value: "Mill"},
		{ID: "Latitude", Value: 53.14},
		{ID: "Longitude", Value: 8.21},
		{ID: "Role", Value: "Producer"},
	}, doc.Data.Stations.Data[0])
}

// TestOutput_SchemaExtension verifies new columns need no emitter changes:
// a previously dropped attribute appears after declaring its column.
func TestOutput_SchemaExtension(t *testing.T) {
	out := New()
	delivery := out.AddDelivery("d1", "loc-1", "loc-2")
	delivery.AddAttribute("Amount", "200 KGM")

	doc := out.Generate()
	require.Len(t, doc.Data.Deliveries.Data, 1)
	assert.Len(t, doc.Data.Deliveries.Data[0], 3)

	out.AddDeliveryColumns(Column{ID: "Amount", Type: "string"})
	doc = out.Generate()
	require.Len(t, doc.Data.Deliveries.Data[0], 4)
	assert.Equal(t, Cell{ID: "Amount", Value: "200 KGM"}, doc.Data.Deliveries.Data[0][3])
}

// TestOutput_StationDeduplication verifies adding a station id twice
// returns the original node instead of duplicating the row.
func TestOutput_StationDeduplication(t *testing.T) {
	out := New()
	first := out.AddStation("loc-1", "Mill", 1, 2)
	second := out.AddStation("loc-1", "Renamed", 3, 4)

	assert.Same(t, first, second)
	assert.True(t, out.HasStation("loc-1"))
	assert.Equal(t, 1, out.StationCount())

	doc := out.Generate()
	require.Len(t, doc.Data.Stations.Data, 1)
	// The original attributes win.
	assert.Equal(t, Cell{ID: "Name", Value: "Mill"}, doc.Data.Stations.Data[0][1])
}

// TestOutput_Relations verifies relation rows carry exactly from/to.
func TestOutput_Relations(t *testing.T) {
	out := New()
	out.AddDeliveryRelation("d1", "d2")
	out.AddDeliveryRelation("d1", "d3")

	doc := out.Generate()
	require.Len(t, doc.Data.DeliveryRelations.Data, 2)
	assert.Equal(t, Row{{ID: "from", Value: "d1"}, {ID: "to", Value: "d2"}}, doc.Data.DeliveryRelations.Data[0])
	assert.Equal(t, Row{{ID: "from", Value: "d1"}, {ID: "to", Value: "d3"}}, doc.Data.DeliveryRelations.Data[1])
}

// TestGenerate_JSONShape verifies the wire field names of the document.
func TestGenerate_JSONShape(t *testing.T) {
	out := New()
	out.AddStation("loc-1", "Mill", 53.14, 8.21)
	data, err := json.Marshal(out.Generate())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Version, decoded["version"])

	inner, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	for _, table := range []string{"stations", "deliveries", "deliveryRelations"} {
		entry, ok := inner[table].(map[string]any)
		require.True(t, ok, table)
		assert.Contains(t, entry, "columnProperties")
		assert.Contains(t, entry, "data")
	}
}
