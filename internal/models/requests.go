package models

import "time"

// DatabaseConnection is a database the local card catalogue can run queries against.
// @Description DatabaseConnection describes a database reachable by the query runner.
type DatabaseConnection struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;unique"`
	Engine    string    `json:"engine" gorm:"type:varchar(50);not null"` // postgres, mysql, sqlite3
	DSN       string    `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SessionResponse is returned when a visualizer session is created or read.
type SessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	State     State     `json:"state"`
}

// AddDataSourceRequest defines the payload for adding a data source to a session.
type AddDataSourceRequest struct {
	Type     DataSourceType `json:"type" binding:"required"`
	SourceID int            `json:"sourceId" binding:"required"`
	Name     string         `json:"name"`
}

// SetDisplayRequest defines the payload for changing the display. A null display clears it.
type SetDisplayRequest struct {
	Display Display `json:"display"`
}

// SetDraggedItemRequest defines the payload for marking (or clearing) the dragged item.
type SetDraggedItemRequest struct {
	Item *DraggedItem `json:"item"`
}

// CreateCardRequest defines the payload for creating a card in the local catalogue.
type CreateCardRequest struct {
	Name                  string         `json:"name" binding:"required,min=1,max=255"`
	Description           string         `json:"description,omitempty" binding:"max=1000"`
	Display               Display        `json:"display" binding:"required"`
	VisualizationSettings map[string]any `json:"visualization_settings"`
	DatabaseID            int            `json:"database_id" binding:"required"`
	NativeQuery           string         `json:"native_query" binding:"required"`
}

// RunCardQueryRequest defines the payload for running a card query.
type RunCardQueryRequest struct {
	Parameters []Parameter `json:"parameters"`
}

// CreateDatabaseRequest defines the payload for registering a query-runner database.
type CreateDatabaseRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Engine string `json:"engine" binding:"required,oneof=postgres mysql sqlite3"`
	DSN    string `json:"dsn" binding:"required"`
}
