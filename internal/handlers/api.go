// Package handlers exposes visualizer sessions and the card catalogue over HTTP.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"visualizer-service/internal/catalog"
	"visualizer-service/internal/session"
	"visualizer-service/internal/visualizer"
)

// DatasetInvalidator drops cached query results of a card.
type DatasetInvalidator interface {
	Invalidate(ctx context.Context, cardID int) error
}

// API holds the dependencies of the HTTP handlers.
type API struct {
	sessions *session.Manager
	fetcher  *visualizer.Fetcher
	repo     *catalog.Repository
	cards    *catalog.Service
	datasets DatasetInvalidator
	async    func(task func())
}

// NewAPI creates the API. repo and cards may be nil, in which case the card
// catalogue routes are not registered.
func NewAPI(sessions *session.Manager, fetcher *visualizer.Fetcher, repo *catalog.Repository, cards *catalog.Service) *API {
	return &API{
		sessions: sessions,
		fetcher:  fetcher,
		repo:     repo,
		cards:    cards,
		async:    func(task func()) { go task() },
	}
}

// SetDatasetCache makes card deletion invalidate the card's cached dataset.
func (a *API) SetDatasetCache(datasets DatasetInvalidator) {
	a.datasets = datasets
}

// RegisterRoutes sets up the API routes on the Gin engine.
func (a *API) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", a.CreateSession)
		sessions.GET("/:session_id", a.GetSession)
		sessions.DELETE("/:session_id", a.DeleteSession)

		sessions.POST("/:session_id/datasources", a.AddDataSource)
		sessions.DELETE("/:session_id/datasources/:source_id", a.RemoveDataSource)
		sessions.POST("/:session_id/datasources/:source_id/toggle", a.ToggleDataSourceExpanded)

		sessions.PUT("/:session_id/display", a.SetDisplay)
		sessions.PATCH("/:session_id/settings", a.UpdateSettings)
		sessions.PUT("/:session_id/dragged-item", a.SetDraggedItem)
		sessions.POST("/:session_id/drop", a.HandleDrop)

		sessions.POST("/:session_id/undo", a.Undo)
		sessions.POST("/:session_id/redo", a.Redo)
		sessions.POST("/:session_id/reset", a.Reset)
	}

	if a.repo == nil || a.cards == nil {
		return
	}

	cards := v1.Group("/cards")
	{
		cards.POST("", a.CreateCard)
		cards.GET("", a.ListCards)
		cards.GET("/:card_id", a.GetCard)
		cards.DELETE("/:card_id", a.DeleteCard)
		cards.POST("/:card_id/query", a.RunCardQuery)
	}

	databases := v1.Group("/databases")
	{
		databases.POST("", a.CreateDatabase)
		databases.GET("", a.ListDatabases)
	}
}
