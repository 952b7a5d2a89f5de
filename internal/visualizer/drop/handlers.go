package drop

import "visualizer-service/internal/models"

// Settings keys written by the built-in handlers.
const (
	SettingGraphDimensions  = "graph.dimensions"
	SettingGraphMetrics     = "graph.metrics"
	SettingFunnelDimension  = "funnel.dimension"
	SettingFunnelMetric     = "funnel.metric"
	SettingPieDimension     = "pie.dimension"
	SettingPieMetric        = "pie.metric"
	SettingPivotColumnSplit = "pivot_table.column_split"
)

var (
	// Cartesian handles line, area, bar, combo, row, scatter and waterfall charts.
	Cartesian = slotHandler(map[string]slot{
		ZoneXAxis: {key: SettingGraphDimensions},
		ZoneYAxis: {key: SettingGraphMetrics},
	})

	// Funnel handles funnel charts; each zone holds a single column.
	Funnel = slotHandler(map[string]slot{
		ZoneFunnelDimension: {key: SettingFunnelDimension, scalar: true},
		ZoneFunnelMetric:    {key: SettingFunnelMetric, scalar: true},
	})

	// Pie handles pie charts: several dimensions, one metric.
	Pie = slotHandler(map[string]slot{
		ZonePieDimension: {key: SettingPieDimension},
		ZonePieMetric:    {key: SettingPieMetric, scalar: true},
	})

	// Pivot handles pivot tables; zones live under the column split setting.
	Pivot = slotHandler(map[string]slot{
		ZonePivotRows:    {key: SettingPivotColumnSplit, sub: "rows"},
		ZonePivotColumns: {key: SettingPivotColumnSplit, sub: "columns"},
		ZonePivotValues:  {key: SettingPivotColumnSplit, sub: "values"},
	})
)

// slotHandler builds a handler for a chart whose drop zones each map to one
// settings slot.
func slotHandler(zones map[string]slot) Handler {
	return func(item *models.HistoryItem, event models.DropEvent) {
		if item.Settings == nil {
			item.Settings = map[string]any{}
		}
		active := event.Active
		if active.Column == nil {
			return
		}

		switch active.Kind {
		case models.DraggedColumn:
			target, ok := zones[event.Over]
			if !ok || active.DataSource == nil {
				return
			}
			source := *active.DataSource
			if source.ID == "" {
				source.ID = models.DataSourceID(source.Type, source.SourceID)
			}
			name := item.AddColumn(source, *active.Column)
			if !target.contains(item, name) {
				target.add(item, name)
			}

		case models.DraggedWellItem:
			name := active.Column.Name
			if !item.HasColumn(name) {
				return
			}
			if target, ok := zones[event.Over]; ok {
				if target.contains(item, name) {
					return
				}
				for _, s := range zones {
					s.remove(item, name)
				}
				target.add(item, name)
				return
			}
			if event.Over != "" {
				return
			}
			removeFromSettings(item.Settings, name)
			dropIfUnused(item, name)
		}
	}
}
