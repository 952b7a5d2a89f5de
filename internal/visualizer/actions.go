package visualizer

import "visualizer-service/internal/models"

// Action is an event consumed by the visualizer reducer. The set of
// implementations is closed; Type names the action for logs and events.
type Action interface {
	Type() string
}

// AsyncStatus is the phase of an asynchronous fetch lifecycle.
type AsyncStatus int

const (
	Pending AsyncStatus = iota
	Fulfilled
	Rejected
)

func (s AsyncStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// SetDisplay changes the chart kind of the present snapshot.
type SetDisplay struct {
	Display models.Display
}

// UpdateSettings shallow-merges Settings into the present snapshot's settings.
type UpdateSettings struct {
	Settings map[string]any
}

// HandleDrop applies a drag-end event.
type HandleDrop struct {
	Event models.DropEvent
}

// RemoveDataSource purges a data source and every reference to it.
type RemoveDataSource struct {
	Source models.DataSource
}

// SetDraggedItem marks the item being dragged; nil clears the marker.
type SetDraggedItem struct {
	Item *models.DraggedItem
}

// ToggleDataSourceExpanded flips the expansion flag of a data source.
type ToggleDataSourceExpanded struct {
	ID string
}

// Undo moves back one snapshot.
type Undo struct{}

// Redo moves forward one snapshot.
type Redo struct{}

// ResetVisualizer replaces the whole state with the initial state.
type ResetVisualizer struct{}

// FetchCard reports a phase of a card definition fetch. Card is set when
// fulfilled, Error when rejected.
type FetchCard struct {
	Status AsyncStatus
	CardID int
	Card   *models.Card
	Error  string
}

// FetchCardQuery reports a phase of a card query fetch. When fulfilled,
// Dataset holds the result and Card the card found in state at completion
// time, which may be nil.
type FetchCardQuery struct {
	Status  AsyncStatus
	CardID  int
	Card    *models.Card
	Dataset *models.Dataset
	Error   string
}

func (SetDisplay) Type() string               { return "visualizer/setDisplay" }
func (UpdateSettings) Type() string           { return "visualizer/updateSettings" }
func (HandleDrop) Type() string               { return "visualizer/handleDrop" }
func (RemoveDataSource) Type() string         { return "visualizer/removeDataSource" }
func (SetDraggedItem) Type() string           { return "visualizer/setDraggedItem" }
func (ToggleDataSourceExpanded) Type() string { return "visualizer/toggleDataSourceExpanded" }
func (Undo) Type() string                     { return "visualizer/undo" }
func (Redo) Type() string                     { return "visualizer/redo" }
func (ResetVisualizer) Type() string          { return "visualizer/resetVisualizer" }
func (a FetchCard) Type() string              { return "visualizer/fetchCard/" + a.Status.String() }
func (a FetchCardQuery) Type() string         { return "visualizer/fetchCardQuery/" + a.Status.String() }
