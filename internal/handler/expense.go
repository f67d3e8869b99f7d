package handler

import (
	"net/http"

	"github.com/pkordes/smarttrav/internal/domain"
)

// AddExpense handles POST /itineraries/{id}/expenses.
func (s *Server) AddExpense(w http.ResponseWriter, r *http.Request) {
	itID, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body ExpenseRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	e, err := s.itineraries.AddExpense(r.Context(), caller(r).UserID, domain.Expense{
		ItineraryID: itID,
		Category:    domain.ExpenseCategory(body.Category),
		Description: body.Description,
		Amount:      body.Amount,
		Date:        body.Date.Time,
	})
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(e))
}

// ListExpenses handles GET /itineraries/{id}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	itID, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	expenses, err := s.itineraries.ListExpenses(r.Context(), caller(r).UserID, itID)
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}
	out := make([]Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}
