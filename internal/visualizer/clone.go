package visualizer

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/mohae/deepcopy"

	"visualizer-service/internal/models"
)

// InitialState returns the state a session starts with and returns to on reset.
func InitialState() models.State {
	return models.State{
		Past:                []models.HistoryItem{},
		Present:             models.NewHistoryItem(),
		Future:              []models.HistoryItem{},
		Cards:               []models.Card{},
		Datasets:            map[string]models.Dataset{},
		LoadingDataSources:  map[string]bool{},
		LoadingDatasets:     map[string]bool{},
		ExpandedDataSources: map[string]bool{},
	}
}

// cloneItem returns a deep copy of item with nil collections replaced by empty ones.
func cloneItem(item models.HistoryItem) models.HistoryItem {
	out, _ := deepcopy.Copy(item).(models.HistoryItem)
	return normalizeItem(out)
}

func normalizeItem(item models.HistoryItem) models.HistoryItem {
	if item.Columns == nil {
		item.Columns = []models.Column{}
	}
	if item.ColumnValuesMapping == nil {
		item.ColumnValuesMapping = map[string][]models.ColumnValueSource{}
	}
	if item.Settings == nil {
		item.Settings = map[string]any{}
	}
	return item
}

// cloneState returns a deep copy of state with nil collections replaced by empty ones.
func cloneState(state models.State) models.State {
	out, _ := deepcopy.Copy(state).(models.State)
	if out.Past == nil {
		out.Past = []models.HistoryItem{}
	}
	if out.Future == nil {
		out.Future = []models.HistoryItem{}
	}
	if out.Cards == nil {
		out.Cards = []models.Card{}
	}
	if out.Datasets == nil {
		out.Datasets = map[string]models.Dataset{}
	}
	if out.LoadingDataSources == nil {
		out.LoadingDataSources = map[string]bool{}
	}
	if out.LoadingDatasets == nil {
		out.LoadingDatasets = map[string]bool{}
	}
	if out.ExpandedDataSources == nil {
		out.ExpandedDataSources = map[string]bool{}
	}
	out.Present = normalizeItem(out.Present)
	return out
}

func cloneSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return map[string]any{}
	}
	out, _ := deepcopy.Copy(settings).(map[string]any)
	return out
}

func cloneCard(card models.Card) models.Card {
	out, _ := deepcopy.Copy(card).(models.Card)
	return out
}

func cloneDataset(dataset models.Dataset) models.Dataset {
	out, _ := deepcopy.Copy(dataset).(models.Dataset)
	return out
}

// equalItems compares two snapshots by value. Settings decoded from JSON and
// settings written by drop handlers may hold the same names in different Go
// types ([]any and []string), so a failed reflective comparison falls back to
// comparing the canonical JSON encoding.
func equalItems(a, b models.HistoryItem) bool {
	a, b = normalizeItem(a), normalizeItem(b)
	if reflect.DeepEqual(a, b) {
		return true
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}
