// Package visualizer implements the visualizer state store: the undo/redo
// history of visualization snapshots, the card fetch lifecycle and drop
// handler dispatch.
package visualizer

import (
	"visualizer-service/internal/models"
	"visualizer-service/internal/visualizer/drop"
)

// Default error messages recorded when a rejected fetch carries none.
const (
	MsgFetchCardFailed      = "Failed to fetch card"
	MsgFetchCardQueryFailed = "Failed to fetch card query"
)

// Reducer computes state transitions. It never mutates its inputs.
type Reducer struct {
	drops drop.Registry
}

// NewReducer creates a Reducer dispatching drops to the given handlers.
func NewReducer(drops drop.Registry) *Reducer {
	return &Reducer{drops: drops}
}

// Reduce returns the state that results from applying action to state.
func (r *Reducer) Reduce(state models.State, action Action) models.State {
	next := cloneState(state)

	switch a := action.(type) {
	case SetDraggedItem:
		next.DraggedItem = nil
		if a.Item != nil {
			item := *a.Item
			next.DraggedItem = &item
		}

	case ToggleDataSourceExpanded:
		next.ExpandedDataSources[a.ID] = !next.ExpandedDataSources[a.ID]

	case Undo:
		if !next.CanUndo() {
			return next
		}
		last := len(next.Past) - 1
		next.Future = append([]models.HistoryItem{next.Present}, next.Future...)
		next.Present = next.Past[last]
		next.Past = next.Past[:last]

	case Redo:
		if !next.CanRedo() {
			return next
		}
		next.Past = append(next.Past, next.Present)
		next.Present = next.Future[0]
		next.Future = next.Future[1:]

	case ResetVisualizer:
		return InitialState()

	case HandleDrop:
		next.DraggedItem = nil
		r.gate(&next, action)

	case RemoveDataSource:
		source := a.Source
		if source.ID == "" {
			source.ID = models.DataSourceID(source.Type, source.SourceID)
		}
		if source.Type == models.DataSourceTypeCard {
			cards := make([]models.Card, 0, len(next.Cards))
			for _, c := range next.Cards {
				if c.ID != source.SourceID {
					cards = append(cards, c)
				}
			}
			next.Cards = cards
		}
		delete(next.ExpandedDataSources, source.ID)
		delete(next.LoadingDataSources, source.ID)
		delete(next.Datasets, source.ID)
		delete(next.LoadingDatasets, source.ID)
		r.gate(&next, RemoveDataSource{Source: source})

	case FetchCard:
		id := models.DataSourceID(models.DataSourceTypeCard, a.CardID)
		switch a.Status {
		case Pending:
			next.LoadingDataSources[id] = true
			next.Error = nil
		case Fulfilled:
			if a.Card == nil {
				return next
			}
			upsertCard(&next, cloneCard(*a.Card))
			id = models.DataSourceID(models.DataSourceTypeCard, a.Card.ID)
			next.LoadingDataSources[id] = false
			next.ExpandedDataSources[id] = true
			r.gate(&next, action)
		case Rejected:
			if a.CardID != 0 {
				next.LoadingDataSources[id] = false
			}
			next.Error = errorMessage(a.Error, MsgFetchCardFailed)
		}

	case FetchCardQuery:
		id := models.DataSourceID(models.DataSourceTypeCard, a.CardID)
		switch a.Status {
		case Pending:
			next.LoadingDatasets[id] = true
			next.Error = nil
		case Fulfilled:
			if a.Dataset != nil {
				next.Datasets[id] = cloneDataset(*a.Dataset)
			}
			next.LoadingDatasets[id] = false
			r.gate(&next, action)
		case Rejected:
			if a.CardID != 0 {
				next.LoadingDatasets[id] = false
			}
			next.Error = errorMessage(a.Error, MsgFetchCardQueryFailed)
		}

	default:
		r.gate(&next, action)
	}

	return next
}

// gate runs the snapshot transition for action and records a history entry
// when the present snapshot changed.
func (r *Reducer) gate(state *models.State, action Action) {
	candidate := r.ReduceHistoryItem(state.Present, action)
	if equalItems(state.Present, candidate) {
		return
	}
	state.Past = append(state.Past, state.Present)
	state.Present = candidate
	state.Future = []models.HistoryItem{}
}

func upsertCard(state *models.State, card models.Card) {
	for i := range state.Cards {
		if state.Cards[i].ID == card.ID {
			state.Cards[i] = card
			return
		}
	}
	state.Cards = append(state.Cards, card)
}

func errorMessage(msg, fallback string) *string {
	if msg == "" {
		msg = fallback
	}
	return &msg
}
