package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/smarttrav/internal/domain"
)

// Money is rendered as a fixed two-decimal string; the core keeps full precision.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

// Pagination mirrors domain.Page without its items.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type PageResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func pageResponse[D, T any](p domain.Page[D], convert func(D) T) PageResponse[T] {
	data := make([]T, len(p.Items))
	for i, item := range p.Items {
		data[i] = convert(item)
	}
	return PageResponse[T]{
		Data: data,
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages(),
		},
	}
}

// ---- users -----------------------------------------------------------------

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(u domain.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// ---- destinations ----------------------------------------------------------

type DestinationRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Category    string          `json:"category"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Tags        []string        `json:"tags"`
}

type Destination struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	PricePerDay   string    `json:"price_per_day"`
	Tags          []string  `json:"tags"`
	ImageURL      *string   `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Server) destinationToResponse(d domain.Destination) Destination {
	resp := Destination{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Location:      d.Location,
		Category:      string(d.Category),
		CategoryLabel: d.Category.Label(),
		PricePerDay:   money(d.PricePerDay),
		Tags:          d.TagList(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if s.destinations != nil {
		if url := s.destinations.ImageURL(d); url != "" {
			resp.ImageURL = &url
		}
	}
	return resp
}

type SavedDestination struct {
	ID          uuid.UUID   `json:"id"`
	Destination Destination `json:"destination"`
	SavedAt     time.Time   `json:"saved_at"`
}

// ---- itineraries -----------------------------------------------------------

type ItineraryRequest struct {
	Title     string             `json:"title"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Budget    decimal.Decimal    `json:"budget"`
	Notes     string             `json:"notes"`
}

type Itinerary struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	StartDate    openapi_types.Date `json:"start_date"`
	EndDate      openapi_types.Date `json:"end_date"`
	DurationDays int                `json:"duration_days"`
	Budget       string             `json:"budget"`
	Notes        *string            `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func itineraryToResponse(it domain.Itinerary) Itinerary {
	resp := Itinerary{
		ID:           it.ID,
		Title:        it.Title,
		StartDate:    openapi_types.Date{Time: it.StartDate},
		EndDate:      openapi_types.Date{Time: it.EndDate},
		DurationDays: it.DurationDays(),
		Budget:       money(it.Budget),
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
	if it.Notes != "" {
		resp.Notes = &it.Notes
	}
	return resp
}

type LinkRequest struct {
	DestinationID uuid.UUID           `json:"destination_id"`
	VisitDate     *openapi_types.Date `json:"visit_date"`
	VisitTime     *string             `json:"visit_time"`
	Notes         string              `json:"notes"`
}

type ItineraryDestination struct {
	ID              uuid.UUID           `json:"id"`
	DestinationID   uuid.UUID           `json:"destination_id"`
	Destination     *Destination        `json:"destination,omitempty"`
	VisitDate       *openapi_types.Date `json:"visit_date,omitempty"`
	VisitTime       *string             `json:"visit_time,omitempty"`
	Notes           string              `json:"notes"`
	CalculatedPrice *string             `json:"calculated_price"`
	AddedAt         time.Time           `json:"added_at"`
}

func (s *Server) linkToResponse(l domain.Link) ItineraryDestination {
	resp := ItineraryDestination{
		ID:            l.ID,
		DestinationID: l.DestinationID,
		VisitDate:     optionalDate(l.VisitDate),
		VisitTime:     l.VisitTime,
		Notes:         l.Notes,
		AddedAt:       l.AddedAt,
	}
	if l.Destination != nil {
		d := s.destinationToResponse(*l.Destination)
		resp.Destination = &d
	}
	if p := l.CalculatedPrice(); p.Valid {
		price := money(p.Decimal)
		resp.CalculatedPrice = &price
	}
	return resp
}

type ExpenseRequest struct {
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Date        openapi_types.Date `json:"date"`
}

type Expense struct {
	ID          uuid.UUID          `json:"id"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      string             `json:"amount"`
	Date        openapi_types.Date `json:"date"`
	CreatedAt   time.Time          `json:"created_at"`
}

func expenseToResponse(e domain.Expense) Expense {
	return Expense{
		ID:          e.ID,
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      money(e.Amount),
		Date:        openapi_types.Date{Time: e.Date},
		CreatedAt:   e.CreatedAt,
	}
}

type FinancialSummary struct {
	Budget          string `json:"budget"`
	DestinationCost string `json:"destination_cost"`
	TotalExpenses   string `json:"total_expenses"`
	TotalCost       string `json:"total_cost"`
	BudgetRemaining string `json:"budget_remaining"`
	OverBudget      bool   `json:"over_budget"`
}

func summaryToResponse(s domain.FinancialSummary) FinancialSummary {
	return FinancialSummary{
		Budget:          money(s.Budget),
		DestinationCost: money(s.DestinationCost),
		TotalExpenses:   money(s.TotalExpenses),
		TotalCost:       money(s.TotalCost),
		BudgetRemaining: money(s.BudgetRemaining),
		OverBudget:      s.OverBudget(),
	}
}

type ItineraryDetail struct {
	Itinerary
	Destinations []ItineraryDestination `json:"destinations"`
	Expenses     []Expense              `json:"expenses"`
	Summary      FinancialSummary       `json:"summary"`
}

type Dashboard struct {
	ItineraryCount    int         `json:"itinerary_count"`
	SavedCount        int         `json:"saved_count"`
	TotalBudget       string      `json:"total_budget"`
	UpcomingTrips     int         `json:"upcoming_trips"`
	RecentItineraries []Itinerary `json:"recent_itineraries"`
}
