package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/handler"
)

func TestListSaved_200(t *testing.T) {
	d := destinationFixture()
	svc := &mockSaved{
		list: func(_ context.Context, userID uuid.UUID) ([]domain.SavedDestination, error) {
			assert.Equal(t, testUserID, userID)
			return []domain.SavedDestination{{ID: uuid.New(), UserID: userID, Destination: d, SavedAt: time.Now().UTC()}}, nil
		},
	}

	rec := do(t, newRouter(handler.Services{Saved: svc, Destinations: &mockDestinations{}}), http.MethodGet, "/saved", userToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]handler.SavedDestination](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, d.ID, resp[0].Destination.ID)
}

func TestSaveDestination_204(t *testing.T) {
	destID := uuid.New()
	calls := 0
	svc := &mockSaved{
		save: func(_ context.Context, userID, got uuid.UUID) error {
			calls++
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, destID, got)
			return nil
		},
	}
	h := newRouter(handler.Services{Saved: svc})

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/saved/"+destID.String(), userToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/saved/"+destID.String(), userToken, nil).Code)
	assert.Equal(t, 2, calls)
}

func TestSaveDestination_404_UnknownDestination(t *testing.T) {
	svc := &mockSaved{
		save: func(_ context.Context, _, _ uuid.UUID) error {
			return fmt.Errorf("service.SavedService.Save: %w", domain.ErrNotFound)
		},
	}

	rec := do(t, newRouter(handler.Services{Saved: svc}), http.MethodPut, "/saved/"+uuid.NewString(), userToken, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "destination not found", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestUnsaveDestination_404_NotSaved(t *testing.T) {
	svc := &mockSaved{
		remove: func(_ context.Context, _, _ uuid.UUID) error {
			return fmt.Errorf("repo.SavedRepo.Remove: %w", domain.ErrNotFound)
		},
	}

	rec := do(t, newRouter(handler.Services{Saved: svc}), http.MethodDelete, "/saved/"+uuid.NewString(), userToken, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "saved destination not found", decode[handler.ErrorResponse](t, rec).Error.Message)
}

// ---- GET /dashboard --------------------------------------------------------

func TestGetDashboard_200(t *testing.T) {
	svc := &mockDashboard{
		get: func(_ context.Context, userID uuid.UUID) (domain.Dashboard, error) {
			assert.Equal(t, testUserID, userID)
			return domain.Dashboard{
				ItineraryCount:    4,
				SavedCount:        2,
				TotalBudget:       dec("42000.5"),
				UpcomingTrips:     1,
				RecentItineraries: []domain.Itinerary{itineraryFixture()},
			}, nil
		},
	}

	rec := do(t, newRouter(handler.Services{Dashboard: svc}), http.MethodGet, "/dashboard", userToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Dashboard](t, rec)
	assert.Equal(t, 4, resp.ItineraryCount)
	assert.Equal(t, 2, resp.SavedCount)
	assert.Equal(t, "42000.50", resp.TotalBudget)
	assert.Equal(t, 1, resp.UpcomingTrips)
	assert.Len(t, resp.RecentItineraries, 1)
}
