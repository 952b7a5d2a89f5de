package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"visualizer-service/internal/models"
	"visualizer-service/internal/session"
	"visualizer-service/internal/visualizer"
)

func sessionResponse(s *session.Session, state models.State) models.SessionResponse {
	return models.SessionResponse{ID: s.ID, CreatedAt: s.CreatedAt, State: state}
}

// lookupSession resolves the :session_id parameter, responding with 404 when unknown.
func (a *API) lookupSession(c *gin.Context) (*session.Session, bool) {
	id := c.Param("session_id")
	s, err := a.sessions.Get(id)
	if err != nil {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeSessionNotFound, "Visualizer session not found", gin.H{"session_id": id})
		return nil, false
	}
	return s, true
}

// dispatch applies action to the session's store and responds with the resulting state.
func (a *API) dispatch(c *gin.Context, s *session.Session, action visualizer.Action) {
	state := s.Store.Dispatch(action)
	RespondWithSuccess(c, http.StatusOK, sessionResponse(s, state))
}

// parseDataSourceID splits a "<type>:<sourceId>" identifier.
func parseDataSourceID(id string) (models.DataSource, bool) {
	kind, rawID, ok := strings.Cut(id, ":")
	if !ok || kind == "" {
		return models.DataSource{}, false
	}
	sourceID, err := strconv.Atoi(rawID)
	if err != nil {
		return models.DataSource{}, false
	}
	return models.NewDataSource(models.DataSourceType(kind), sourceID, ""), true
}

// CreateSession godoc
// @Summary Create a visualizer session
// @Description Start a new visualizer session holding the initial state.
// @Tags sessions
// @Produce  json
// @Success 201 {object} models.SessionResponse "Successfully created session"
// @Router /sessions [post]
func (a *API) CreateSession(c *gin.Context) {
	s := a.sessions.Create()
	RespondWithSuccess(c, http.StatusCreated, sessionResponse(s, s.Store.State()))
}

// GetSession godoc
// @Summary Get a visualizer session
// @Description Get the full visualizer state of a session, including its undo/redo history.
// @Tags sessions
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Success 200 {object} models.SessionResponse "Successfully retrieved session"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id} [get]
func (a *API) GetSession(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	RespondWithSuccess(c, http.StatusOK, sessionResponse(s, s.Store.State()))
}

// DeleteSession godoc
// @Summary Delete a visualizer session
// @Tags sessions
// @Param   session_id  path  string  true  "Session ID"
// @Success 204 "Successfully deleted session"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id} [delete]
func (a *API) DeleteSession(c *gin.Context) {
	id := c.Param("session_id")
	if err := a.sessions.Delete(id); err != nil {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeSessionNotFound, "Visualizer session not found", gin.H{"session_id": id})
		return
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}

// AddDataSource godoc
// @Summary Add a data source to a session
// @Description Start loading a data source. The card and its query result are fetched in the background; poll the session to observe loading flags, datasets and errors.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session_id  path  string                       true  "Session ID"
// @Param   source      body  models.AddDataSourceRequest  true  "Data source to add"
// @Success 202 {object} models.DataSource "Data source accepted for loading"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/datasources [post]
func (a *API) AddDataSource(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	var req models.AddDataSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	source := models.NewDataSource(req.Type, req.SourceID, req.Name)
	a.async(func() {
		if err := a.fetcher.AddDataSource(context.Background(), s.Store, source); err != nil {
			log.Printf("Session %s: loading data source %s failed: %v", s.ID, source.ID, err)
		}
	})
	RespondWithSuccess(c, http.StatusAccepted, source)
}

// RemoveDataSource godoc
// @Summary Remove a data source from a session
// @Description Remove a data source, its loaded card and dataset, and every column value reference pointing at it.
// @Tags sessions
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Param   source_id   path  string  true  "Data source ID, e.g. card:17"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 400 {object} models.APIError "Bad Request (INVALID_ID_FORMAT)"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/datasources/{source_id} [delete]
func (a *API) RemoveDataSource(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	source, ok := parseDataSourceID(c.Param("source_id"))
	if !ok {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid data source ID, expected <type>:<id>", gin.H{"source_id": c.Param("source_id")})
		return
	}
	a.dispatch(c, s, visualizer.RemoveDataSource{Source: source})
}

// ToggleDataSourceExpanded godoc
// @Summary Toggle the expansion of a data source
// @Tags sessions
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Param   source_id   path  string  true  "Data source ID, e.g. card:17"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/datasources/{source_id}/toggle [post]
func (a *API) ToggleDataSourceExpanded(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	a.dispatch(c, s, visualizer.ToggleDataSourceExpanded{ID: c.Param("source_id")})
}

// SetDisplay godoc
// @Summary Change the chart display
// @Description Switching between cartesian charts keeps columns and settings; any other switch resets them.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session_id  path  string                    true  "Session ID"
// @Param   display     body  models.SetDisplayRequest  true  "New display, null to clear"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/display [put]
func (a *API) SetDisplay(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	var req models.SetDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	a.dispatch(c, s, visualizer.SetDisplay{Display: req.Display})
}

// UpdateSettings godoc
// @Summary Merge visualization settings
// @Description Shallow-merge the given settings into the present settings; keys in the request win.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Param   settings    body  object  true  "Partial settings"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/settings [patch]
func (a *API) UpdateSettings(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	var settings map[string]any
	if err := c.ShouldBindJSON(&settings); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	a.dispatch(c, s, visualizer.UpdateSettings{Settings: settings})
}

// SetDraggedItem godoc
// @Summary Mark the item being dragged
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session_id  path  string                        true  "Session ID"
// @Param   item        body  models.SetDraggedItemRequest  true  "Dragged item, null to clear"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/dragged-item [put]
func (a *API) SetDraggedItem(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	var req models.SetDraggedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	a.dispatch(c, s, visualizer.SetDraggedItem{Item: req.Item})
}

// HandleDrop godoc
// @Summary Apply a drag-end event
// @Description Clear the dragged item and apply the drop to the chart of the present display.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session_id  path  string            true  "Session ID"
// @Param   event       body  models.DropEvent  true  "Drop event"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/drop [post]
func (a *API) HandleDrop(c *gin.Context) {
	s, ok := a.lookupSession(c)
	if !ok {
		return
	}
	var event models.DropEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	a.dispatch(c, s, visualizer.HandleDrop{Event: event})
}

// Undo godoc
// @Summary Undo the last visualization change
// @Tags sessions
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/undo [post]
func (a *API) Undo(c *gin.Context) {
	if s, ok := a.lookupSession(c); ok {
		a.dispatch(c, s, visualizer.Undo{})
	}
}

// Redo godoc
// @Summary Redo the last undone visualization change
// @Tags sessions
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/redo [post]
func (a *API) Redo(c *gin.Context) {
	if s, ok := a.lookupSession(c); ok {
		a.dispatch(c, s, visualizer.Redo{})
	}
}

// Reset godoc
// @Summary Reset a session to the initial state
// @Tags sessions
// @Produce  json
// @Param   session_id  path  string  true  "Session ID"
// @Success 200 {object} models.SessionResponse "Updated session"
// @Failure 404 {object} models.APIError "Not Found (SESSION_NOT_FOUND)"
// @Router /sessions/{session_id}/reset [post]
func (a *API) Reset(c *gin.Context) {
	if s, ok := a.lookupSession(c); ok {
		a.dispatch(c, s, visualizer.ResetVisualizer{})
	}
}
