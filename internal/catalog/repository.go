// Package catalog is the local card catalogue: saved cards and the databases
// their native queries run against.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"visualizer-service/internal/cardapi"
	"visualizer-service/internal/models"
)

var (
	// ErrDuplicateCard is returned when a card name is already taken.
	ErrDuplicateCard = errors.New("card with this name already exists")
	// ErrDuplicateDatabase is returned when a database name is already taken.
	ErrDuplicateDatabase = errors.New("database with this name already exists")
	// ErrDatabaseNotFound is returned when no database exists for the requested id.
	ErrDatabaseNotFound = errors.New("database not found")
)

// Repository persists cards and database connections with gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	return false
}

// CreateCard stores a new card.
func (r *Repository) CreateCard(ctx context.Context, card *models.Card) error {
	if card.VisualizationSettings == nil {
		card.VisualizationSettings = map[string]any{}
	}
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateCard
		}
		return fmt.Errorf("failed to create card %q: %w", card.Name, err)
	}
	return nil
}

// GetCard returns the card with the given id.
func (r *Repository) GetCard(ctx context.Context, id int) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cardapi.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}
	return &card, nil
}

// ListCards returns all cards ordered by id.
func (r *Repository) ListCards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// DeleteCard removes the card with the given id.
func (r *Repository) DeleteCard(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&models.Card{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return cardapi.ErrCardNotFound
	}
	return nil
}

// CreateDatabase stores a new database connection.
func (r *Repository) CreateDatabase(ctx context.Context, conn *models.DatabaseConnection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateDatabase
		}
		return fmt.Errorf("failed to create database %q: %w", conn.Name, err)
	}
	return nil
}

// GetDatabase returns the database connection with the given id.
func (r *Repository) GetDatabase(ctx context.Context, id int) (*models.DatabaseConnection, error) {
	var conn models.DatabaseConnection
	if err := r.db.WithContext(ctx).First(&conn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDatabaseNotFound
		}
		return nil, fmt.Errorf("failed to get database %d: %w", id, err)
	}
	return &conn, nil
}

// ListDatabases returns all database connections ordered by id.
func (r *Repository) ListDatabases(ctx context.Context) ([]models.DatabaseConnection, error) {
	var conns []models.DatabaseConnection
	if err := r.db.WithContext(ctx).Order("id asc").Find(&conns).Error; err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return conns, nil
}
