package visualizer

import (
	"visualizer-service/internal/models"
	"visualizer-service/internal/visualizer/drop"
)

// ReduceHistoryItem returns the snapshot that results from applying action to
// item. Actions that do not concern the snapshot return an equal copy.
func (r *Reducer) ReduceHistoryItem(item models.HistoryItem, action Action) models.HistoryItem {
	draft := cloneItem(item)

	switch a := action.(type) {
	case SetDisplay:
		setDisplay(&draft, a.Display)

	case UpdateSettings:
		for k, v := range cloneSettings(a.Settings) {
			draft.Settings[k] = v
		}

	case HandleDrop:
		if draft.Display == models.DisplayNone {
			return draft
		}
		if handler := r.drops.Select(draft.Display); handler != nil {
			handler(&draft, a.Event)
		}

	case RemoveDataSource:
		id := a.Source.ID
		if id == "" {
			id = models.DataSourceID(a.Source.Type, a.Source.SourceID)
		}
		for name, sources := range draft.ColumnValuesMapping {
			kept := make([]models.ColumnValueSource, 0, len(sources))
			for _, vs := range sources {
				if vs.DataSourceID() != id {
					kept = append(kept, vs)
				}
			}
			draft.ColumnValuesMapping[name] = kept
		}

	case FetchCardQuery:
		if a.Status != Fulfilled || a.Card == nil || a.Dataset == nil {
			return draft
		}
		card := a.Card
		if draft.Display == models.DisplayNone ||
			(card.Display == draft.Display && len(draft.Columns) == 0) {
			return snapshotFromCard(*card, *a.Dataset)
		}
	}

	return draft
}

func setDisplay(item *models.HistoryItem, display models.Display) {
	if display != models.DisplayNone && item.Display != models.DisplayNone &&
		display.IsCartesian() && item.Display.IsCartesian() {
		item.Display = display
		return
	}

	item.Display = display
	item.Settings = map[string]any{}
	item.Columns = []models.Column{}
	item.ColumnValuesMapping = map[string][]models.ColumnValueSource{}

	if display == models.DisplayPivot {
		item.Columns = []models.Column{models.PivotGroupingColumn()}
	}
}

// columnVizSettings lists the settings of a display whose values name columns.
func columnVizSettings(display models.Display) []string {
	switch {
	case display.IsCartesian():
		return []string{drop.SettingGraphDimensions, drop.SettingGraphMetrics}
	case display == models.DisplayFunnel:
		return []string{drop.SettingFunnelMetric, drop.SettingFunnelDimension}
	case display == models.DisplayPie:
		return []string{drop.SettingPieMetric, drop.SettingPieDimension}
	}
	return nil
}

// snapshotFromCard builds a snapshot showing dataset the way card is saved:
// every result column under a fresh synthetic name, and column settings
// rewritten to point at the synthetic names.
func snapshotFromCard(card models.Card, dataset models.Dataset) models.HistoryItem {
	source := models.NewDataSource(models.DataSourceTypeCard, card.ID, card.Name)
	item := models.NewHistoryItem()
	item.Display = card.Display

	cols := dataset.Data.Cols
	renamed := make(map[string]string, len(cols))
	for i, col := range cols {
		name := models.SyntheticColumnName(i + 1)
		item.Columns = append(item.Columns, models.CopyColumn(name, col))
		item.ColumnValuesMapping[name] = []models.ColumnValueSource{models.NewColumnReference(source, col)}
		if _, seen := renamed[col.Name]; !seen {
			renamed[col.Name] = name
		}
	}

	item.Settings = cloneSettings(card.VisualizationSettings)
	for _, key := range columnVizSettings(item.Display) {
		switch original := card.VisualizationSettings[key].(type) {
		case nil:
		case string:
			if original == "" {
				continue
			}
			if name, ok := renamed[original]; ok {
				item.Settings[key] = name
			} else {
				delete(item.Settings, key)
			}
		case []string, []any:
			names := []string{}
			for _, n := range stringValues(original) {
				if name, ok := renamed[n]; ok {
					names = append(names, name)
				}
			}
			item.Settings[key] = names
		}
	}
	return item
}

func stringValues(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
