// Package drop holds the chart-family drop handlers that translate a drag-end
// event into column and settings changes of a visualizer snapshot.
package drop

import "visualizer-service/internal/models"

// Drop zone identifiers carried in DropEvent.Over.
const (
	ZoneXAxis           = "X_AXIS"
	ZoneYAxis           = "Y_AXIS"
	ZoneFunnelDimension = "FUNNEL_DIMENSION"
	ZoneFunnelMetric    = "FUNNEL_METRIC"
	ZonePieDimension    = "PIE_DIMENSION"
	ZonePieMetric       = "PIE_METRIC"
	ZonePivotRows       = "PIVOT_ROWS"
	ZonePivotColumns    = "PIVOT_COLUMNS"
	ZonePivotValues     = "PIVOT_VALUES"
)

// Handler mutates a draft snapshot in response to a drop. The draft is a
// private copy; handlers may change it freely.
type Handler func(item *models.HistoryItem, event models.DropEvent)

// Registry maps chart families to their drop handlers.
type Registry struct {
	Cartesian Handler
	Funnel    Handler
	Pie       Handler
	Pivot     Handler
}

// Default returns the built-in handlers.
func Default() Registry {
	return Registry{
		Cartesian: Cartesian,
		Funnel:    Funnel,
		Pie:       Pie,
		Pivot:     Pivot,
	}
}

// Select returns the handler for display, or nil when drops are ignored for it.
func (r Registry) Select(display models.Display) Handler {
	switch {
	case display == models.DisplayNone:
		return nil
	case display.IsCartesian():
		return r.Cartesian
	case display == models.DisplayFunnel:
		return r.Funnel
	case display == models.DisplayPie:
		return r.Pie
	case display == models.DisplayPivot:
		return r.Pivot
	}
	return nil
}
