// Package domain contains the core data types for the SmartTrav API together
// with the itinerary cost-accounting rules. It depends only on uuid and
// decimal and is imported by every other internal package.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Itinerary is a user-owned trip plan bounded by a start and end date.
// It is the top-level aggregate: links and expenses belong to an itinerary
// and are deleted with it.
//
// EndDate before StartDate is allowed; DurationDays clamps it to one day.
type Itinerary struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Budget    decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationDays returns the inclusive day count of the itinerary.
func (it Itinerary) DurationDays() int {
	return DurationDays(it.StartDate, it.EndDate)
}

// Link records that a destination is part of an itinerary.
// The calculated price is a cache of PricePerDay × DurationDays and can only
// be written through Recompute.
type Link struct {
	ID            uuid.UUID
	ItineraryID   uuid.UUID
	DestinationID uuid.UUID
	VisitDate     *time.Time
	VisitTime     *string // "15:04"
	Notes         string
	AddedAt       time.Time

	// Destination is populated by reads that join the catalog row.
	Destination *Destination

	calculatedPrice decimal.NullDecimal
}

// CalculatedPrice returns the memoized price. Valid is false when the link
// has never been priced or was priced without an itinerary or destination.
func (l Link) CalculatedPrice() decimal.NullDecimal {
	return l.calculatedPrice
}

// Recompute refreshes the cached price from the itinerary's current duration
// and the destination's current per-day price. If either is nil the cache is
// cleared instead.
func (l *Link) Recompute(it *Itinerary, d *Destination) {
	if it == nil || d == nil {
		l.calculatedPrice = decimal.NullDecimal{}
		return
	}
	l.calculatedPrice = decimal.NewNullDecimal(CalculateTotalCost(d.PricePerDay, it.DurationDays()))
}

// HydrateCalculatedPrice restores a price read back from storage.
// Only the persistence layer calls this; everything else goes through Recompute.
func (l *Link) HydrateCalculatedPrice(p decimal.NullDecimal) {
	l.calculatedPrice = p
}

// ItineraryDetail is the read model for a single itinerary page.
type ItineraryDetail struct {
	Itinerary Itinerary
	Links     []Link
	Expenses  []Expense
	Summary   FinancialSummary
}
