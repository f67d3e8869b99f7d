package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExportKind tells which part of an itinerary an ExportRow came from.
type ExportKind string

const (
	ExportDestination ExportKind = "destination"
	ExportExpense     ExportKind = "expense"
)

// ExportRow is a single line of an itinerary export.
// It is a flat view: one row per linked destination followed by one row per
// expense. Amount is the cached link price for destinations (zero when the
// link is unpriced) and the logged amount for expenses.
type ExportRow struct {
	Kind      ExportKind
	Name      string // destination name or expense description
	Category  string
	Date      *time.Time
	VisitTime string
	Notes     string
	Amount    decimal.Decimal
	Unpriced  bool
}

// ItineraryExport is everything a CSV or PDF rendering needs.
type ItineraryExport struct {
	Itinerary    Itinerary
	DurationDays int
	Rows         []ExportRow
	Summary      FinancialSummary
}
