package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
)

// SavedService manages a user's bookmarked destinations.
type SavedService struct {
	saved        repo.SavedRepo
	destinations repo.DestinationRepo
}

func NewSavedService(saved repo.SavedRepo, destinations repo.DestinationRepo) *SavedService {
	return &SavedService{saved: saved, destinations: destinations}
}

// List returns the user's bookmarks, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SavedService) List(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error) {
	saved, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.SavedService.List: %w", err)
	}
	if saved == nil {
		return []domain.SavedDestination{}, nil
	}
	return saved, nil
}

// Save bookmarks a destination. Saving twice is not an error.
func (s *SavedService) Save(ctx context.Context, userID, destinationID uuid.UUID) error {
	if _, err := s.destinations.GetByID(ctx, destinationID); err != nil {
		return fmt.Errorf("service.SavedService.Save: %w", err)
	}
	if err := s.saved.Save(ctx, userID, destinationID); err != nil {
		return fmt.Errorf("service.SavedService.Save: %w", err)
	}
	return nil
}

func (s *SavedService) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	if err := s.saved.Remove(ctx, userID, destinationID); err != nil {
		return fmt.Errorf("service.SavedService.Remove: %w", err)
	}
	return nil
}
