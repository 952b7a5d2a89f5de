package catalog

import (
	"context"
	"errors"
	"fmt"

	"visualizer-service/internal/models"
)

// Service serves catalogue cards to the visualizer by running their native
// queries against the card's database.
type Service struct {
	repo   *Repository
	runner *QueryRunner
}

// NewService creates a catalogue-backed card service.
func NewService(repo *Repository, runner *QueryRunner) *Service {
	return &Service{repo: repo, runner: runner}
}

func (s *Service) GetCard(ctx context.Context, id int) (*models.Card, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *Service) GetCardQuery(ctx context.Context, id int, parameters []models.Parameter) (*models.Dataset, error) {
	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	conn, err := s.repo.GetDatabase(ctx, card.DatabaseID)
	if err != nil {
		if errors.Is(err, ErrDatabaseNotFound) {
			return nil, fmt.Errorf("card %d references database %d: %w", id, card.DatabaseID, err)
		}
		return nil, err
	}
	return s.runner.Run(ctx, *conn, card.NativeQuery, parameters)
}
