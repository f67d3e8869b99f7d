package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DurationDays returns the inclusive number of calendar days between start
// and end. Only the date part of each value is used. An end before start is
// clamped to a single day rather than rejected.
func DurationDays(start, end time.Time) int {
	days := int(dayNumber(end)-dayNumber(start)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// dayNumber counts whole days since the Unix epoch. It stays exact for every
// representable date, unlike a time.Duration, which overflows after 292 years.
func dayNumber(t time.Time) int64 {
	return civilDate(t).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// civilDate drops the clock and zone, keeping the calendar date as written.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculateTotalCost returns pricePerDay × days with no rounding.
func CalculateTotalCost(pricePerDay decimal.Decimal, days int) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(int64(days)))
}

// TotalDestinationCost sums the cached prices of links. Unpriced links count as zero.
func TotalDestinationCost(links []Link) decimal.Decimal {
	total := decimal.Zero
	for _, l := range links {
		if p := l.CalculatedPrice(); p.Valid {
			total = total.Add(p.Decimal)
		}
	}
	return total
}

// FinancialSummary is the money view of one itinerary.
// BudgetRemaining is negative when the trip is over budget.
type FinancialSummary struct {
	Budget          decimal.Decimal
	DestinationCost decimal.Decimal
	TotalExpenses   decimal.Decimal
	TotalCost       decimal.Decimal
	BudgetRemaining decimal.Decimal
}

// OverBudget reports whether total cost exceeds the budget.
func (s FinancialSummary) OverBudget() bool {
	return s.BudgetRemaining.IsNegative()
}

// Summarize totals expenses, adds the destination cost and compares the
// result against the itinerary budget.
func Summarize(it Itinerary, expenses []Expense, destinationCost decimal.Decimal) FinancialSummary {
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}
	totalCost := totalExpenses.Add(destinationCost)
	return FinancialSummary{
		Budget:          it.Budget,
		DestinationCost: destinationCost,
		TotalExpenses:   totalExpenses,
		TotalCost:       totalCost,
		BudgetRemaining: it.Budget.Sub(totalCost),
	}
}
