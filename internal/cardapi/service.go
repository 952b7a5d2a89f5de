// Package cardapi defines how the visualizer reads cards and their query
// results, with an HTTP client for a remote BI backend and a caching decorator.
package cardapi

import (
	"context"
	"errors"

	"visualizer-service/internal/models"
)

// ErrCardNotFound is returned when no card exists for the requested id.
var ErrCardNotFound = errors.New("card not found")

// Service fetches card definitions and executes card queries.
type Service interface {
	GetCard(ctx context.Context, id int) (*models.Card, error)
	GetCardQuery(ctx context.Context, id int, parameters []models.Parameter) (*models.Dataset, error)
}
