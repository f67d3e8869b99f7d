package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
)

// recentItineraries is how many itineraries the dashboard lists.
const recentItineraries = 3

// DashboardService aggregates the figures on a user's landing page.
type DashboardService struct {
	itineraries repo.ItineraryRepo
	saved       repo.SavedRepo
	now         func() time.Time
}

func NewDashboardService(itineraries repo.ItineraryRepo, saved repo.SavedRepo) *DashboardService {
	return &DashboardService{itineraries: itineraries, saved: saved, now: time.Now}
}

// Get returns the user's dashboard. Upcoming trips are those starting today or later.
func (s *DashboardService) Get(ctx context.Context, userID uuid.UUID) (domain.Dashboard, error) {
	count, totalBudget, upcoming, err := s.itineraries.Stats(ctx, userID, s.now())
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.DashboardService.Get: %w", err)
	}
	savedCount, err := s.saved.CountByUser(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.DashboardService.Get: %w", err)
	}
	recent, err := s.itineraries.ListRecent(ctx, userID, recentItineraries)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.DashboardService.Get: %w", err)
	}
	if recent == nil {
		recent = []domain.Itinerary{}
	}
	return domain.Dashboard{
		ItineraryCount:    count,
		SavedCount:        savedCount,
		TotalBudget:       totalBudget,
		UpcomingTrips:     upcoming,
		RecentItineraries: recent,
	}, nil
}
