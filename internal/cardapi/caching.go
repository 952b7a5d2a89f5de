package cardapi

import (
	"context"
	"fmt"
	"log"
	"time"

	"visualizer-service/internal/models"
)

// Cache stores JSON-encodable values under string keys.
type Cache interface {
	// Get decodes the value stored under key into out and reports whether it was found.
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachingService caches unparameterized card query results of another Service.
// Card definitions are always read through.
type CachingService struct {
	next  Service
	cache Cache
	ttl   time.Duration
}

// NewCachingService wraps next with a dataset cache.
func NewCachingService(next Service, cache Cache, ttl time.Duration) *CachingService {
	return &CachingService{next: next, cache: cache, ttl: ttl}
}

// DatasetKey returns the cache key of a card's dataset.
func DatasetKey(cardID int) string {
	return fmt.Sprintf("visualizer:card:%d:dataset", cardID)
}

func (s *CachingService) GetCard(ctx context.Context, id int) (*models.Card, error) {
	return s.next.GetCard(ctx, id)
}

func (s *CachingService) GetCardQuery(ctx context.Context, id int, parameters []models.Parameter) (*models.Dataset, error) {
	if len(parameters) > 0 {
		return s.next.GetCardQuery(ctx, id, parameters)
	}

	key := DatasetKey(id)
	var cached models.Dataset
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("Warning: dataset cache read failed for %s: %v", key, err)
	} else if found {
		return &cached, nil
	}

	dataset, err := s.next.GetCardQuery(ctx, id, parameters)
	if err != nil {
		return nil, err
	}
	if dataset != nil {
		if err := s.cache.Set(ctx, key, dataset, s.ttl); err != nil {
			log.Printf("Warning: dataset cache write failed for %s: %v", key, err)
		}
	}
	return dataset, nil
}

// Invalidate drops the cached dataset of a card.
func (s *CachingService) Invalidate(ctx context.Context, cardID int) error {
	key := DatasetKey(cardID)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to invalidate cached dataset %s: %w", key, err)
	}
	return nil
}
