package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account holder. Username and Email are unique case-insensitively.
// PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// Dashboard aggregates the per-user figures shown on the landing page.
type Dashboard struct {
	ItineraryCount    int
	SavedCount        int
	TotalBudget       decimal.Decimal
	UpcomingTrips     int
	RecentItineraries []Itinerary
}

// Principal is the authenticated caller of a request, decoded from a bearer token.
type Principal struct {
	UserID    uuid.UUID
	IsAdmin   bool
	TokenID   string
	ExpiresAt time.Time
}
