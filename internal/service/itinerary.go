package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
)

// ItineraryService implements business logic for itineraries, their
// destination links and their expenses. Every operation is scoped to the
// owning user; another user's itinerary is reported as domain.ErrNotFound.
type ItineraryService struct {
	repos repo.Repos
	store repo.Store
	log   *slog.Logger
}

// NewItineraryService constructs an ItineraryService. repos serves single
// statements; store runs the multi-row itinerary edit.
func NewItineraryService(repos repo.Repos, store repo.Store, log *slog.Logger) *ItineraryService {
	return &ItineraryService{repos: repos, store: store, log: orDiscard(log)}
}

// Create validates and persists a new itinerary.
func (s *ItineraryService) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it = normalizeItinerary(it)
	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}
	created, err := s.repos.Itineraries.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return created, nil
}

func (s *ItineraryService) Get(ctx context.Context, userID, id uuid.UUID) (domain.Itinerary, error) {
	it, err := s.repos.Itineraries.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	return it, nil
}

// List returns one page of the user's itineraries, newest first.
func (s *ItineraryService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Itinerary], error) {
	items, total, err := s.repos.Itineraries.ListPaged(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.Itinerary]{}, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	return domain.NewPage(items, total, p), nil
}

// Detail loads an itinerary with its links and expenses and computes its
// financial summary. A missing itinerary fails before anything is summed.
func (s *ItineraryService) Detail(ctx context.Context, userID, id uuid.UUID) (domain.ItineraryDetail, error) {
	it, err := s.repos.Itineraries.GetByID(ctx, userID, id)
	if err != nil {
		return domain.ItineraryDetail{}, fmt.Errorf("service.ItineraryService.Detail: %w", err)
	}
	links, err := s.repos.Links.ListByItinerary(ctx, id)
	if err != nil {
		return domain.ItineraryDetail{}, fmt.Errorf("service.ItineraryService.Detail: %w", err)
	}
	expenses, err := s.repos.Expenses.ListByItinerary(ctx, id)
	if err != nil {
		return domain.ItineraryDetail{}, fmt.Errorf("service.ItineraryService.Detail: %w", err)
	}
	return domain.ItineraryDetail{
		Itinerary: it,
		Links:     links,
		Expenses:  expenses,
		Summary:   domain.Summarize(it, expenses, domain.TotalDestinationCost(links)),
	}, nil
}

// Update saves the itinerary and re-prices every linked destination against
// the new duration. The itinerary row and all link rows are written in one
// transaction; if any write fails none of them are kept.
func (s *ItineraryService) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it = normalizeItinerary(it)
	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}

	var updated domain.Itinerary
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		var err error
		updated, err = tx.Itineraries.Update(ctx, it)
		if err != nil {
			return err
		}
		links, err := tx.Links.ListByItinerary(ctx, updated.ID)
		if err != nil {
			return err
		}
		for _, l := range links {
			l.Recompute(&updated, l.Destination)
			if _, err := tx.Links.Save(ctx, l); err != nil {
				return fmt.Errorf("link %s: %w", l.ID, err)
			}
		}
		s.log.DebugContext(ctx, "itinerary links repriced",
			"itinerary_id", updated.ID, "links", len(links), "duration_days", updated.DurationDays())
		return nil
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an itinerary together with its links and expenses.
func (s *ItineraryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repos.Itineraries.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// AddDestination links a catalog destination to the itinerary, pricing it
// for the itinerary's current duration. Linking the same destination twice
// returns domain.ErrConflict.
func (s *ItineraryService) AddDestination(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error) {
	if err := validateVisitTime(l.VisitTime); err != nil {
		return domain.Link{}, err
	}
	it, err := s.repos.Itineraries.GetByID(ctx, userID, l.ItineraryID)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.ItineraryService.AddDestination: %w", err)
	}
	d, err := s.repos.Destinations.GetByID(ctx, l.DestinationID)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.ItineraryService.AddDestination: destination: %w", err)
	}

	l.Notes = strings.TrimSpace(l.Notes)
	l.Recompute(&it, &d)
	created, err := s.repos.Links.Create(ctx, l)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.ItineraryService.AddDestination: %w", err)
	}
	return created, nil
}

// UpdateLink changes a link's visit date, time and notes. Saving re-prices
// the link from the current itinerary and destination.
func (s *ItineraryService) UpdateLink(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error) {
	if err := validateVisitTime(l.VisitTime); err != nil {
		return domain.Link{}, err
	}
	it, err := s.repos.Itineraries.GetByID(ctx, userID, l.ItineraryID)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.ItineraryService.UpdateLink: %w", err)
	}
	existing, err := s.repos.Links.GetByID(ctx, l.ItineraryID, l.ID)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.ItineraryService.UpdateLink: %w", err)
	}

	existing.VisitDate = l.VisitDate
	existing.VisitTime = l.VisitTime
	existing.Notes = strings.TrimSpace(l.Notes)
	existing.Recompute(&it, existing.Destination)

	saved, err := s.repos.Links.Save(ctx, existing)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.ItineraryService.UpdateLink: %w", err)
	}
	return saved, nil
}

// RemoveDestination unlinks a destination from the itinerary.
func (s *ItineraryService) RemoveDestination(ctx context.Context, userID, itineraryID, linkID uuid.UUID) error {
	if _, err := s.repos.Itineraries.GetByID(ctx, userID, itineraryID); err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveDestination: %w", err)
	}
	if err := s.repos.Links.Delete(ctx, itineraryID, linkID); err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveDestination: %w", err)
	}
	return nil
}

// AddExpense logs a cost against the itinerary.
func (s *ItineraryService) AddExpense(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}
	if _, err := s.repos.Itineraries.GetByID(ctx, userID, e.ItineraryID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ItineraryService.AddExpense: %w", err)
	}
	created, err := s.repos.Expenses.Create(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ItineraryService.AddExpense: %w", err)
	}
	return created, nil
}

// ListExpenses returns the itinerary's expenses ordered by date.
func (s *ItineraryService) ListExpenses(ctx context.Context, userID, itineraryID uuid.UUID) ([]domain.Expense, error) {
	if _, err := s.repos.Itineraries.GetByID(ctx, userID, itineraryID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListExpenses: %w", err)
	}
	expenses, err := s.repos.Expenses.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListExpenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func normalizeItinerary(it domain.Itinerary) domain.Itinerary {
	it.Title = strings.TrimSpace(it.Title)
	it.Notes = strings.TrimSpace(it.Notes)
	return it
}

// validateItinerary enforces the rules shared by Create and Update.
// An end date before the start date is accepted; DurationDays clamps it.
func validateItinerary(it domain.Itinerary) error {
	if err := required("title", it.Title); err != nil {
		return err
	}
	if it.StartDate.IsZero() || it.EndDate.IsZero() {
		return validationError("start_date and end_date are required")
	}
	if it.Budget.IsNegative() {
		return validationError("budget must not be negative")
	}
	return nil
}

func validateExpense(e domain.Expense) error {
	if !e.Category.Valid() {
		return validationError("unknown expense category %q", e.Category)
	}
	if err := required("description", e.Description); err != nil {
		return err
	}
	if !e.Amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	if e.Date.IsZero() {
		return validationError("date is required")
	}
	return nil
}
