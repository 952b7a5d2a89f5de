package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visualizer-service/internal/models"
)

var sales = models.NewDataSource(models.DataSourceTypeCard, 17, "Sales")

func columnDrop(name, zone string) models.DropEvent {
	return models.DropEvent{
		Active: models.DraggedItem{
			ID:         "col-" + name,
			Kind:       models.DraggedColumn,
			DataSource: &sales,
			Column:     &models.Column{Name: name, DisplayName: name, BaseType: "type/Text"},
		},
		Over: zone,
	}
}

func wellDrop(name, zone string) models.DropEvent {
	return models.DropEvent{
		Active: models.DraggedItem{
			ID:     "well-" + name,
			Kind:   models.DraggedWellItem,
			Column: &models.Column{Name: name},
		},
		Over: zone,
	}
}

func TestRegistrySelect(t *testing.T) {
	r := Default()

	assert.Nil(t, r.Select(models.DisplayNone))
	assert.Nil(t, r.Select(models.DisplayTable))
	for _, d := range []models.Display{models.DisplayLine, models.DisplayBar, models.DisplayArea, models.DisplayScatter} {
		assert.NotNil(t, r.Select(d), "display %s should have a handler", d)
	}
	assert.NotNil(t, r.Select(models.DisplayFunnel))
	assert.NotNil(t, r.Select(models.DisplayPie))
	assert.NotNil(t, r.Select(models.DisplayPivot))

	called := ""
	custom := Registry{
		Cartesian: func(*models.HistoryItem, models.DropEvent) { called = "cartesian" },
		Pie:       func(*models.HistoryItem, models.DropEvent) { called = "pie" },
	}
	custom.Select(models.DisplayCombo)(nil, models.DropEvent{})
	assert.Equal(t, "cartesian", called)
	custom.Select(models.DisplayPie)(nil, models.DropEvent{})
	assert.Equal(t, "pie", called)
	assert.Nil(t, custom.Select(models.DisplayFunnel))
}

func TestCartesianColumnDrops(t *testing.T) {
	item := models.NewHistoryItem()
	item.Display = models.DisplayBar

	Cartesian(&item, columnDrop("Date", ZoneXAxis))
	Cartesian(&item, columnDrop("Total", ZoneYAxis))
	Cartesian(&item, columnDrop("Total", ZoneYAxis))

	require.Len(t, item.Columns, 2)
	assert.Equal(t, "COLUMN_1", item.Columns[0].Name)
	assert.Equal(t, "COLUMN_2", item.Columns[1].Name)
	assert.Equal(t, []string{"COLUMN_1"}, item.Settings[SettingGraphDimensions])
	assert.Equal(t, []string{"COLUMN_2"}, item.Settings[SettingGraphMetrics])

	refs := item.ColumnValuesMapping["COLUMN_2"]
	require.Len(t, refs, 1)
	assert.Equal(t, "card:17", refs[0].DataSourceID())
	assert.Equal(t, "Total", refs[0].Ref.OriginalName)
}

func TestCartesianUnknownZoneIgnored(t *testing.T) {
	item := models.NewHistoryItem()
	item.Display = models.DisplayLine

	Cartesian(&item, columnDrop("Date", "SOMEWHERE_ELSE"))

	assert.Empty(t, item.Columns)
	assert.Empty(t, item.Settings)
}

func TestCartesianWellItemMoveAndRemove(t *testing.T) {
	item := models.NewHistoryItem()
	item.Display = models.DisplayLine
	Cartesian(&item, columnDrop("Date", ZoneXAxis))
	Cartesian(&item, columnDrop("Total", ZoneYAxis))

	Cartesian(&item, wellDrop("COLUMN_2", ZoneXAxis))
	assert.Equal(t, []string{"COLUMN_1", "COLUMN_2"}, item.Settings[SettingGraphDimensions])
	assert.Equal(t, []string{}, item.Settings[SettingGraphMetrics])

	Cartesian(&item, wellDrop("COLUMN_1", ""))
	assert.Equal(t, []string{"COLUMN_2"}, item.Settings[SettingGraphDimensions])
	assert.False(t, item.HasColumn("COLUMN_1"))
	_, mapped := item.ColumnValuesMapping["COLUMN_1"]
	assert.False(t, mapped)
}

func TestFunnelReplacesScalar(t *testing.T) {
	item := models.NewHistoryItem()
	item.Display = models.DisplayFunnel

	Funnel(&item, columnDrop("Stage", ZoneFunnelDimension))
	Funnel(&item, columnDrop("Count", ZoneFunnelMetric))
	Funnel(&item, columnDrop("Amount", ZoneFunnelMetric))

	assert.Equal(t, "COLUMN_1", item.Settings[SettingFunnelDimension])
	assert.Equal(t, "COLUMN_3", item.Settings[SettingFunnelMetric])
	require.Len(t, item.Columns, 2)
	assert.False(t, item.HasColumn("COLUMN_2"), "replaced metric column should be dropped")
	assert.Equal(t, "Amount", item.ColumnValuesMapping["COLUMN_3"][0].Ref.OriginalName)
}

func TestPieDimensionsAndMetric(t *testing.T) {
	item := models.NewHistoryItem()
	item.Display = models.DisplayPie

	Pie(&item, columnDrop("Category", ZonePieDimension))
	Pie(&item, columnDrop("Region", ZonePieDimension))
	Pie(&item, columnDrop("Total", ZonePieMetric))

	assert.Equal(t, []string{"COLUMN_1", "COLUMN_2"}, item.Settings[SettingPieDimension])
	assert.Equal(t, "COLUMN_3", item.Settings[SettingPieMetric])
}

func TestPivotKeepsArtificialColumn(t *testing.T) {
	item := models.NewHistoryItem()
	item.Display = models.DisplayPivot
	item.Columns = []models.Column{models.PivotGroupingColumn()}

	Pivot(&item, columnDrop("Category", ZonePivotRows))
	Pivot(&item, columnDrop("Total", ZonePivotValues))

	split, ok := item.Settings[SettingPivotColumnSplit].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"COLUMN_2"}, split["rows"])
	assert.Equal(t, []string{"COLUMN_3"}, split["values"])

	Pivot(&item, wellDrop(models.PivotGroupingColumnName, ""))
	assert.True(t, item.HasColumn(models.PivotGroupingColumnName))
}

func TestStringListAcceptsDecodedJSON(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]any{"a", 1, "b"}))
	assert.Equal(t, []string{}, stringList(nil))
	assert.Equal(t, []string{"x"}, stringList([]string{"x"}))
}
