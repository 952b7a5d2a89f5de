package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayJSON(t *testing.T) {
	b, err := json.Marshal(HistoryItem{Display: DisplayNone})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"display":null`)

	var item HistoryItem
	require.NoError(t, json.Unmarshal([]byte(`{"display":"pie"}`), &item))
	assert.Equal(t, DisplayPie, item.Display)
	require.NoError(t, json.Unmarshal([]byte(`{"display":null}`), &item))
	assert.Equal(t, DisplayNone, item.Display)

	assert.Error(t, json.Unmarshal([]byte(`{"display":3}`), &item))
}

func TestDisplayIsCartesian(t *testing.T) {
	for _, d := range []Display{DisplayLine, DisplayArea, DisplayBar, DisplayCombo, DisplayRow, DisplayScatter, DisplayWaterfall} {
		assert.True(t, d.IsCartesian(), d)
	}
	for _, d := range []Display{DisplayNone, DisplayFunnel, DisplayPie, DisplayPivot, DisplayTable} {
		assert.False(t, d.IsCartesian(), d)
	}
}

func TestDataSourceIDs(t *testing.T) {
	source := NewDataSource(DataSourceTypeCard, 17, "Sales")
	assert.Equal(t, "card:17", source.ID)

	ref := NameRef(source.ID, "Created_At")
	assert.Equal(t, "$_card:17_Created_At", ref)
	assert.Equal(t, "card:17", DataSourceIDFromNameRef(ref))
	assert.Equal(t, "", DataSourceIDFromNameRef("plain"))
}

func TestColumnValueSourceJSON(t *testing.T) {
	var sources []ColumnValueSource
	require.NoError(t, json.Unmarshal([]byte(`["$_card:1_Total", {"sourceId":"card:2","originalName":"Date"}]`), &sources))
	require.Len(t, sources, 2)

	assert.Equal(t, "$_card:1_Total", sources[0].NameRef)
	assert.Nil(t, sources[0].Ref)
	assert.Equal(t, "card:1", sources[0].DataSourceID())

	require.NotNil(t, sources[1].Ref)
	assert.Equal(t, "Date", sources[1].Ref.OriginalName)
	assert.Equal(t, "card:2", sources[1].DataSourceID())

	b, err := json.Marshal(sources)
	require.NoError(t, err)
	assert.JSONEq(t, `["$_card:1_Total", {"sourceId":"card:2","originalName":"Date"}]`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &sources))
}

func TestHistoryItemAddColumn(t *testing.T) {
	sales := NewDataSource(DataSourceTypeCard, 17, "Sales")
	orders := NewDataSource(DataSourceTypeCard, 5, "Orders")
	item := NewHistoryItem()

	first := item.AddColumn(sales, Column{Name: "Date", BaseType: "type/Date"})
	assert.Equal(t, "COLUMN_1", first)
	assert.Equal(t, first, item.AddColumn(sales, Column{Name: "Date"}), "same source column is reused")

	second := item.AddColumn(orders, Column{Name: "Date"})
	assert.Equal(t, "COLUMN_2", second)
	require.Len(t, item.Columns, 2)
	assert.Equal(t, []any{"field", "COLUMN_1", map[string]any{"base-type": "type/Date"}}, item.Columns[0].FieldRef)

	item.RemoveColumn(first)
	assert.False(t, item.HasColumn(first))
	assert.NotContains(t, item.ColumnValuesMapping, first)

	third := item.AddColumn(sales, Column{Name: "Total"})
	assert.Equal(t, "COLUMN_3", third, "names never collide with remaining columns")
}

func TestStateHelpers(t *testing.T) {
	s := State{Cards: []Card{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	card, ok := s.CardByID(2)
	require.True(t, ok)
	assert.Equal(t, "b", card.Name)
	_, ok = s.CardByID(3)
	assert.False(t, ok)

	assert.False(t, s.CanUndo())
	s.Future = []HistoryItem{NewHistoryItem()}
	assert.True(t, s.CanRedo())
}
