package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Display is a chart kind. The zero value means no display has been chosen
// and is serialized as JSON null.
type Display string

const (
	DisplayNone      Display = ""
	DisplayLine      Display = "line"
	DisplayArea      Display = "area"
	DisplayBar       Display = "bar"
	DisplayCombo     Display = "combo"
	DisplayRow       Display = "row"
	DisplayScatter   Display = "scatter"
	DisplayWaterfall Display = "waterfall"
	DisplayFunnel    Display = "funnel"
	DisplayPie       Display = "pie"
	DisplayPivot     Display = "pivot"
	DisplayTable     Display = "table"
	DisplayScalar    Display = "scalar"
)

var cartesianDisplays = map[Display]bool{
	DisplayLine:      true,
	DisplayArea:      true,
	DisplayBar:       true,
	DisplayCombo:     true,
	DisplayRow:       true,
	DisplayScatter:   true,
	DisplayWaterfall: true,
}

// IsCartesian reports whether the display belongs to the cartesian chart family.
func (d Display) IsCartesian() bool {
	return cartesianDisplays[d]
}

func (d Display) MarshalJSON() ([]byte, error) {
	if d == DisplayNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *Display) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = DisplayNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("display must be a string or null: %w", err)
	}
	*d = Display(s)
	return nil
}

// DataSourceType is the variant tag of a DataSource.
type DataSourceType string

const DataSourceTypeCard DataSourceType = "card"

// DataSource identifies an origin of tabular data, e.g. a saved card.
type DataSource struct {
	ID       string         `json:"id"` // "<type>:<sourceId>"
	Type     DataSourceType `json:"type"`
	SourceID int            `json:"sourceId"`
	Name     string         `json:"name"`
}

// DataSourceID builds the composite identifier of a data source.
func DataSourceID(t DataSourceType, sourceID int) string {
	return fmt.Sprintf("%s:%d", t, sourceID)
}

// NewDataSource returns a DataSource with its composite ID filled in.
func NewDataSource(t DataSourceType, sourceID int, name string) DataSource {
	return DataSource{
		ID:       DataSourceID(t, sourceID),
		Type:     t,
		SourceID: sourceID,
		Name:     name,
	}
}

// Card is a saved query definition.
// @Description Card is a saved query definition with its visualization settings.
type Card struct {
	ID                    int            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                  string         `json:"name" gorm:"type:varchar(255);not null;unique"`
	Description           string         `json:"description,omitempty" gorm:"type:text"`
	Display               Display        `json:"display" gorm:"type:varchar(50)"`
	VisualizationSettings map[string]any `json:"visualization_settings" gorm:"serializer:json"`
	DatabaseID            int            `json:"database_id,omitempty" gorm:"index"`
	NativeQuery           string         `json:"native_query,omitempty" gorm:"type:text"`
	CreatedAt             time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// Column describes a result column. Dataset columns and visualizer columns
// share this shape; visualizer columns carry a synthetic COLUMN_<n> name.
type Column struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	ExpressionName string `json:"expression_name,omitempty"`
	FieldRef       []any  `json:"field_ref,omitempty"`
	BaseType       string `json:"base_type,omitempty"`
	EffectiveType  string `json:"effective_type,omitempty"`
	Source         string `json:"source,omitempty"`
}

// DatasetData holds column metadata and row values of an executed query.
type DatasetData struct {
	Cols []Column `json:"cols"`
	Rows [][]any  `json:"rows"`
}

// Dataset is the executed result of a card's query.
type Dataset struct {
	Data     DatasetData `json:"data"`
	RowCount int         `json:"row_count"`
	Status   string      `json:"status,omitempty"`
}

// Parameter is a query parameter value passed to a card query.
type Parameter struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// HistoryItem is the present visualization snapshot, the unit of undo/redo.
type HistoryItem struct {
	Display             Display                        `json:"display"`
	Columns             []Column                       `json:"columns"`
	ColumnValuesMapping map[string][]ColumnValueSource `json:"columnValuesMapping"`
	Settings            map[string]any                 `json:"settings"`
}

// NewHistoryItem returns an empty snapshot with no display.
func NewHistoryItem() HistoryItem {
	return HistoryItem{
		Columns:             []Column{},
		ColumnValuesMapping: map[string][]ColumnValueSource{},
		Settings:            map[string]any{},
	}
}

// DraggedItemKind tells what is being dragged.
type DraggedItemKind string

const (
	DraggedColumn   DraggedItemKind = "COLUMN"
	DraggedWellItem DraggedItemKind = "WELL_ITEM"
)

// DraggedItem is the payload attached to an in-progress drag. For COLUMN items
// Column is the source dataset column; for WELL_ITEM items Column.Name is the
// synthetic visualizer column name.
type DraggedItem struct {
	ID         string          `json:"id"`
	Kind       DraggedItemKind `json:"type"`
	DataSource *DataSource     `json:"dataSource,omitempty"`
	Column     *Column         `json:"column,omitempty"`
}

// DropEvent is a drag-end event. Over is the id of the drop zone under the
// pointer, empty when the item was released outside every zone.
type DropEvent struct {
	Active DraggedItem `json:"active"`
	Over   string      `json:"over"`
}

// State is the complete visualizer state: history stacks plus bookkeeping
// that is not tracked by undo/redo.
type State struct {
	Past    []HistoryItem `json:"past"`
	Present HistoryItem   `json:"present"`
	Future  []HistoryItem `json:"future"`

	Cards               []Card             `json:"cards"`
	Datasets            map[string]Dataset `json:"datasets"`
	LoadingDataSources  map[string]bool    `json:"loadingDataSources"`
	LoadingDatasets     map[string]bool    `json:"loadingDatasets"`
	ExpandedDataSources map[string]bool    `json:"expandedDataSources"`
	Error               *string            `json:"error"`
	DraggedItem         *DraggedItem       `json:"draggedItem"`
}

// CardByID returns the loaded card with the given id.
func (s *State) CardByID(id int) (*Card, bool) {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i], true
		}
	}
	return nil, false
}

// CanUndo reports whether there is a past snapshot to return to.
func (s *State) CanUndo() bool { return len(s.Past) > 0 }

// CanRedo reports whether there is a future snapshot to move to.
func (s *State) CanRedo() bool { return len(s.Future) > 0 }
