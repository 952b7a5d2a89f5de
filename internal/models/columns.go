package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// PivotGroupingColumnName is the synthetic column every pivot table starts with.
	PivotGroupingColumnName = "pivot-grouping"

	columnNamePrefix = "COLUMN_"
	nameRefPrefix    = "$_"
)

// ColumnReference points a visualizer column at a column of a data source.
type ColumnReference struct {
	SourceID     string   `json:"sourceId"`
	OriginalName string   `json:"originalName"`
	Transforms   []string `json:"transforms,omitempty"`
}

// ColumnValueSource is one value source of a visualizer column: either a
// name reference string ("$_<sourceId>_<column>") or a structured reference.
type ColumnValueSource struct {
	NameRef string
	Ref     *ColumnReference
}

// DataSourceID returns the id of the data source the value source points at.
func (v ColumnValueSource) DataSourceID() string {
	if v.Ref != nil {
		return v.Ref.SourceID
	}
	return DataSourceIDFromNameRef(v.NameRef)
}

func (v ColumnValueSource) MarshalJSON() ([]byte, error) {
	if v.Ref != nil {
		return json.Marshal(v.Ref)
	}
	return json.Marshal(v.NameRef)
}

func (v *ColumnValueSource) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		v.Ref = nil
		return json.Unmarshal(b, &v.NameRef)
	}
	var ref ColumnReference
	if err := json.Unmarshal(b, &ref); err != nil {
		return fmt.Errorf("column value source must be a string or an object: %w", err)
	}
	v.NameRef = ""
	v.Ref = &ref
	return nil
}

// NameRef builds a name reference string for a data source column.
func NameRef(sourceID, columnName string) string {
	return nameRefPrefix + sourceID + "_" + columnName
}

// DataSourceIDFromNameRef extracts the data source id from a name reference.
func DataSourceIDFromNameRef(ref string) string {
	parts := strings.SplitN(ref, "_", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// NewColumnReference creates a structured value source for a data source column.
func NewColumnReference(source DataSource, column Column) ColumnValueSource {
	return ColumnValueSource{Ref: &ColumnReference{
		SourceID:     source.ID,
		OriginalName: column.Name,
	}}
}

// CopyColumn returns a copy of column renamed to name, with a field reference
// pointing at the new name.
func CopyColumn(name string, column Column) Column {
	c := column
	c.Name = name
	c.FieldRef = []any{"field", name, map[string]any{"base-type": column.BaseType}}
	return c
}

// PivotGroupingColumn returns the artificial column injected into pivot tables.
func PivotGroupingColumn() Column {
	return Column{
		Name:           PivotGroupingColumnName,
		DisplayName:    PivotGroupingColumnName,
		ExpressionName: PivotGroupingColumnName,
		FieldRef:       []any{"expression", PivotGroupingColumnName},
		BaseType:       "type/Integer",
		EffectiveType:  "type/Integer",
		Source:         "artificial",
	}
}

// SyntheticColumnName returns the i-th (1-based) synthetic column name.
func SyntheticColumnName(i int) string {
	return fmt.Sprintf("%s%d", columnNamePrefix, i)
}

// HasColumn reports whether the snapshot has a column with the given name.
func (h *HistoryItem) HasColumn(name string) bool {
	for _, c := range h.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// FindColumnFor returns the synthetic name of the column whose only value
// source references column of source, if any.
func (h *HistoryItem) FindColumnFor(source DataSource, column Column) (string, bool) {
	for _, c := range h.Columns {
		refs := h.ColumnValuesMapping[c.Name]
		if len(refs) != 1 || refs[0].Ref == nil {
			continue
		}
		if refs[0].Ref.SourceID == source.ID && refs[0].Ref.OriginalName == column.Name {
			return c.Name, true
		}
	}
	return "", false
}

// AddColumn adds column of source to the snapshot and returns its synthetic
// name. A column already mapped to the same source column is reused.
func (h *HistoryItem) AddColumn(source DataSource, column Column) string {
	if name, ok := h.FindColumnFor(source, column); ok {
		return name
	}
	n := len(h.Columns) + 1
	name := SyntheticColumnName(n)
	for h.HasColumn(name) {
		n++
		name = SyntheticColumnName(n)
	}
	h.Columns = append(h.Columns, CopyColumn(name, column))
	if h.ColumnValuesMapping == nil {
		h.ColumnValuesMapping = map[string][]ColumnValueSource{}
	}
	h.ColumnValuesMapping[name] = []ColumnValueSource{NewColumnReference(source, column)}
	return name
}

// RemoveColumn drops a column and its value mapping.
func (h *HistoryItem) RemoveColumn(name string) {
	columns := make([]Column, 0, len(h.Columns))
	for _, c := range h.Columns {
		if c.Name != name {
			columns = append(columns, c)
		}
	}
	h.Columns = columns
	delete(h.ColumnValuesMapping, name)
}
