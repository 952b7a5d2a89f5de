package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"visualizer-service/internal/cardapi"
	"visualizer-service/internal/catalog"
	"visualizer-service/internal/models"
)

func parseCardID(c *gin.Context) (int, bool) {
	idStr := c.Param("card_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid ID format for card ID", gin.H{"card_id": idStr})
		return 0, false
	}
	return id, true
}

// CreateCard godoc
// @Summary Create a card
// @Description Save a native query with its display and visualization settings in the local catalogue.
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   card  body  models.CreateCardRequest  true  "Card to create"
// @Success 201 {object} models.Card "Successfully created card"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (DATABASE_NOT_FOUND)"
// @Failure 409 {object} models.APIError "Conflict (DUPLICATE_NAME)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /cards [post]
func (a *API) CreateCard(c *gin.Context) {
	var req models.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := a.repo.GetDatabase(ctx, req.DatabaseID); err != nil {
		if errors.Is(err, catalog.ErrDatabaseNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeDatabaseNotFound, "Database not found", gin.H{"database_id": req.DatabaseID})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to look up database", nil)
		return
	}

	card := models.Card{
		Name:                  req.Name,
		Description:           req.Description,
		Display:               req.Display,
		VisualizationSettings: req.VisualizationSettings,
		DatabaseID:            req.DatabaseID,
		NativeQuery:           req.NativeQuery,
	}
	if err := a.repo.CreateCard(ctx, &card); err != nil {
		if errors.Is(err, catalog.ErrDuplicateCard) {
			RespondWithError(c, http.StatusConflict, models.ErrorCodeDuplicateName, "Card with this name already exists.", gin.H{"name": card.Name})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to create card.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, card)
}

// ListCards godoc
// @Summary List cards
// @Tags cards
// @Produce  json
// @Success 200 {array} models.Card "Successfully retrieved cards"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /cards [get]
func (a *API) ListCards(c *gin.Context) {
	cards, err := a.repo.ListCards(c.Request.Context())
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list cards", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, cards)
}

// GetCard godoc
// @Summary Get a card
// @Tags cards
// @Produce  json
// @Param   card_id  path  int  true  "Card ID"
// @Success 200 {object} models.Card "Successfully retrieved card"
// @Failure 400 {object} models.APIError "Bad Request (INVALID_ID_FORMAT)"
// @Failure 404 {object} models.APIError "Not Found (CARD_NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /cards/{card_id} [get]
func (a *API) GetCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	card, err := a.repo.GetCard(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, cardapi.ErrCardNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeCardNotFound, "Card not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to get card", nil)
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, card)
}

// DeleteCard godoc
// @Summary Delete a card
// @Tags cards
// @Param   card_id  path  int  true  "Card ID"
// @Success 204 "Successfully deleted card"
// @Failure 400 {object} models.APIError "Bad Request (INVALID_ID_FORMAT)"
// @Failure 404 {object} models.APIError "Not Found (CARD_NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /cards/{card_id} [delete]
func (a *API) DeleteCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	if err := a.repo.DeleteCard(c.Request.Context(), id); err != nil {
		if errors.Is(err, cardapi.ErrCardNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeCardNotFound, "Card not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to delete card", nil)
		}
		return
	}
	if a.datasets != nil {
		if err := a.datasets.Invalidate(c.Request.Context(), id); err != nil {
			log.Printf("Warning: card %d deleted but its cached dataset was kept: %v", id, err)
		}
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}

// RunCardQuery godoc
// @Summary Run a card's query
// @Description Execute the card's native query against its database and return the dataset.
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   card_id  path  int                         true   "Card ID"
// @Param   request  body  models.RunCardQueryRequest  false  "Query parameters"
// @Success 200 {object} models.Dataset "Query result"
// @Failure 400 {object} models.APIError "Bad Request (INVALID_ID_FORMAT, VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (CARD_NOT_FOUND, DATABASE_NOT_FOUND)"
// @Failure 502 {object} models.APIError "Bad Gateway (QUERY_FAILED)"
// @Router /cards/{card_id}/query [post]
func (a *API) RunCardQuery(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	var req models.RunCardQueryRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
			return
		}
	}

	dataset, err := a.cards.GetCardQuery(c.Request.Context(), id, req.Parameters)
	if err != nil {
		switch {
		case errors.Is(err, cardapi.ErrCardNotFound):
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeCardNotFound, "Card not found", gin.H{"id": id})
		case errors.Is(err, catalog.ErrDatabaseNotFound):
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeDatabaseNotFound, "Card database not found", gin.H{"id": id})
		default:
			RespondWithError(c, http.StatusBadGateway, models.ErrorCodeQueryFailed, "Failed to run card query", gin.H{"reason": err.Error()})
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, dataset)
}

// CreateDatabase godoc
// @Summary Register a database
// @Description Register a database that catalogue card queries can run against.
// @Tags databases
// @Accept  json
// @Produce  json
// @Param   database  body  models.CreateDatabaseRequest  true  "Database to register"
// @Success 201 {object} models.DatabaseConnection "Successfully registered database"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 409 {object} models.APIError "Conflict (DUPLICATE_NAME)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /databases [post]
func (a *API) CreateDatabase(c *gin.Context) {
	var req models.CreateDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	conn := models.DatabaseConnection{Name: req.Name, Engine: req.Engine, DSN: req.DSN}
	if err := a.repo.CreateDatabase(c.Request.Context(), &conn); err != nil {
		if errors.Is(err, catalog.ErrDuplicateDatabase) {
			RespondWithError(c, http.StatusConflict, models.ErrorCodeDuplicateName, "Database with this name already exists.", gin.H{"name": conn.Name})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to register database.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, conn)
}

// ListDatabases godoc
// @Summary List registered databases
// @Tags databases
// @Produce  json
// @Success 200 {array} models.DatabaseConnection "Successfully retrieved databases"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /databases [get]
func (a *API) ListDatabases(c *gin.Context) {
	conns, err := a.repo.ListDatabases(c.Request.Context())
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list databases", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, conns)
}
