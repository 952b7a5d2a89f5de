package visualizer

import (
	"context"
	"errors"
	"log"

	"visualizer-service/internal/cardapi"
	"visualizer-service/internal/models"
)

// FetchFailure is returned when an upstream fetch yields no data.
type FetchFailure struct {
	Message string
	Err     error
}

func (e *FetchFailure) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// Dispatcher is the part of a Store the Fetcher needs.
type Dispatcher interface {
	Dispatch(action Action) models.State
	Card(id int) (*models.Card, bool)
}

// Fetcher loads data sources into a store, reporting each fetch phase as an action.
type Fetcher struct {
	cards cardapi.Service
}

// NewFetcher creates a Fetcher reading cards from the given service.
func NewFetcher(cards cardapi.Service) *Fetcher {
	return &Fetcher{cards: cards}
}

// AddDataSource fetches the card behind source and then its query result.
// Unsupported source types are logged and ignored. Failures are recorded in
// the store and also returned.
func (f *Fetcher) AddDataSource(ctx context.Context, store Dispatcher, source models.DataSource) error {
	if source.Type != models.DataSourceTypeCard {
		log.Printf("Warning: Unsupported data source type: %s", source.Type)
		return nil
	}

	cardID := source.SourceID
	cardErr := f.fetchCard(ctx, store, cardID)
	queryErr := f.fetchCardQuery(ctx, store, cardID)
	return errors.Join(cardErr, queryErr)
}

func (f *Fetcher) fetchCard(ctx context.Context, store Dispatcher, cardID int) error {
	store.Dispatch(FetchCard{Status: Pending, CardID: cardID})

	card, err := f.cards.GetCard(ctx, cardID)
	if err != nil || card == nil {
		failure := &FetchFailure{Message: MsgFetchCardFailed, Err: err}
		log.Printf("Error fetching card %d: %v", cardID, failure)
		store.Dispatch(FetchCard{Status: Rejected, CardID: cardID, Error: failure.Message})
		return failure
	}

	store.Dispatch(FetchCard{Status: Fulfilled, CardID: cardID, Card: card})
	return nil
}

func (f *Fetcher) fetchCardQuery(ctx context.Context, store Dispatcher, cardID int) error {
	store.Dispatch(FetchCardQuery{Status: Pending, CardID: cardID})

	dataset, err := f.cards.GetCardQuery(ctx, cardID, []models.Parameter{})
	if err != nil || dataset == nil {
		failure := &FetchFailure{Message: MsgFetchCardQueryFailed, Err: err}
		log.Printf("Error fetching query result of card %d: %v", cardID, failure)
		store.Dispatch(FetchCardQuery{Status: Rejected, CardID: cardID, Error: failure.Message})
		return failure
	}

	card, _ := store.Card(cardID)
	store.Dispatch(FetchCardQuery{Status: Fulfilled, CardID: cardID, Card: card, Dataset: dataset})
	return nil
}
