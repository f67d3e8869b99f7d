package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a manually logged cost.
type ExpenseCategory string

const (
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseLodging   ExpenseCategory = "lodging"
	ExpenseFood      ExpenseCategory = "food"
	ExpenseActivity  ExpenseCategory = "activity"
	ExpenseShopping  ExpenseCategory = "shopping"
	ExpenseOther     ExpenseCategory = "other"
)

// Valid reports whether c is one of the known expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseTransport, ExpenseLodging, ExpenseFood, ExpenseActivity, ExpenseShopping, ExpenseOther:
		return true
	}
	return false
}

// Expense is a cost entry logged against an itinerary, independent of the
// catalog. Expenses are immutable once created and go away with their itinerary.
type Expense struct {
	ID          uuid.UUID
	ItineraryID uuid.UUID
	Category    ExpenseCategory
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}
