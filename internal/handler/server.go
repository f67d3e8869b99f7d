// Package handler implements the HTTP handlers for the SmartTrav API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, itinerary.go, etc.) but share the same Server struct so
// they can access its dependencies. Routes registers them on a chi router.
package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/service"
)

// The servicer interfaces below are the business operations the handlers
// depend on. Defining them here, in the consumer package, lets handler tests
// inject mocks without touching the database or service layer.

type AuthServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, login, password string) (domain.Session, error)
	Logout(ctx context.Context, p domain.Principal) error
	Profile(ctx context.Context, userID uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, u domain.User) (domain.User, error)
}

type DestinationServicer interface {
	List(ctx context.Context, f domain.DestinationFilter, p domain.PaginationParams) (domain.Page[domain.Destination], error)
	Get(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)
	UploadImage(ctx context.Context, id uuid.UUID, image io.Reader) (domain.Destination, error)
	ImageURL(d domain.Destination) string
}

type ItineraryServicer interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Itinerary], error)
	Detail(ctx context.Context, userID, id uuid.UUID) (domain.ItineraryDetail, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddDestination(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error)
	UpdateLink(ctx context.Context, userID uuid.UUID, l domain.Link) (domain.Link, error)
	RemoveDestination(ctx context.Context, userID, itineraryID, linkID uuid.UUID) error
	AddExpense(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	ListExpenses(ctx context.Context, userID, itineraryID uuid.UUID) ([]domain.Expense, error)
}

type SavedServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.SavedDestination, error)
	Save(ctx context.Context, userID, destinationID uuid.UUID) error
	Remove(ctx context.Context, userID, destinationID uuid.UUID) error
}

type DashboardServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.Dashboard, error)
}

type ExportServicer interface {
	Export(ctx context.Context, userID, itineraryID uuid.UUID) (domain.ItineraryExport, error)
}

// Services bundles every dependency of Server. Nil fields are allowed in
// tests that only exercise part of the API.
type Services struct {
	Auth         AuthServicer
	Destinations DestinationServicer
	Itineraries  ItineraryServicer
	Saved        SavedServicer
	Dashboard    DashboardServicer
	Export       ExportServicer
}

// Server holds the services the handlers call.
type Server struct {
	auth         AuthServicer
	destinations DestinationServicer
	itineraries  ItineraryServicer
	saved        SavedServicer
	dashboard    DashboardServicer
	export       ExportServicer
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		auth:         svc.Auth,
		destinations: svc.Destinations,
		itineraries:  svc.Itineraries,
		saved:        svc.Saved,
		dashboard:    svc.Dashboard,
		export:       svc.Export,
		log:          log,
	}
}
