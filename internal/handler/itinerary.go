package handler

import (
	"net/http"

	"github.com/pkordes/smarttrav/internal/domain"
)

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body ItineraryRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	it, err := s.itineraries.Create(r.Context(), body.toDomain(caller(r)))
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(it))
}

// ListItineraries handles GET /itineraries?page=&limit=, newest first.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	p, err := pagination(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	page, err := s.itineraries.List(r.Context(), caller(r).UserID, p)
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page, itineraryToResponse))
}

// GetItinerary handles GET /itineraries/{id}: the itinerary with its linked
// destinations, expenses and financial summary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	d, err := s.itineraries.Detail(r.Context(), caller(r).UserID, id)
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}

	resp := ItineraryDetail{
		Itinerary:    itineraryToResponse(d.Itinerary),
		Destinations: make([]ItineraryDestination, len(d.Links)),
		Expenses:     make([]Expense, len(d.Expenses)),
		Summary:      summaryToResponse(d.Summary),
	}
	for i, l := range d.Links {
		resp.Destinations[i] = s.linkToResponse(l)
	}
	for i, e := range d.Expenses {
		resp.Expenses[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateItinerary handles PUT /itineraries/{id}. Every linked destination is
// repriced against the new dates.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body ItineraryRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	in := body.toDomain(caller(r))
	in.ID = id
	it, err := s.itineraries.Update(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// DeleteItinerary handles DELETE /itineraries/{id}. Links and expenses go with it.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if err := s.itineraries.Delete(r.Context(), caller(r).UserID, id); err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b ItineraryRequest) toDomain(p domain.Principal) domain.Itinerary {
	return domain.Itinerary{
		UserID:    p.UserID,
		Title:     b.Title,
		StartDate: b.StartDate.Time,
		EndDate:   b.EndDate.Time,
		Budget:    b.Budget,
		Notes:     b.Notes,
	}
}
