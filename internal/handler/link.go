package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/smarttrav/internal/domain"
)

// AddItineraryDestination handles POST /itineraries/{id}/destinations.
// Linking the same destination twice is a 409.
func (s *Server) AddItineraryDestination(w http.ResponseWriter, r *http.Request) {
	itID, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body LinkRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}
	if body.DestinationID == uuid.Nil {
		requestError(w, "destination_id is required")
		return
	}

	l := body.toDomain()
	l.ItineraryID = itID
	created, err := s.itineraries.AddDestination(r.Context(), caller(r).UserID, l)
	if err != nil {
		s.fail(w, r, err, "itinerary destination")
		return
	}
	writeJSON(w, http.StatusCreated, s.linkToResponse(created))
}

// UpdateItineraryDestination handles PUT /itineraries/{id}/destinations/{linkId}.
// Saving a link always refreshes its calculated price.
func (s *Server) UpdateItineraryDestination(w http.ResponseWriter, r *http.Request) {
	itID, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	linkID, err := pathUUID(r, "linkId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body LinkRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	l := body.toDomain()
	l.ID = linkID
	l.ItineraryID = itID
	saved, err := s.itineraries.UpdateLink(r.Context(), caller(r).UserID, l)
	if err != nil {
		s.fail(w, r, err, "itinerary destination")
		return
	}
	writeJSON(w, http.StatusOK, s.linkToResponse(saved))
}

// RemoveItineraryDestination handles DELETE /itineraries/{id}/destinations/{linkId}.
func (s *Server) RemoveItineraryDestination(w http.ResponseWriter, r *http.Request) {
	itID, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	linkID, err := pathUUID(r, "linkId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if err := s.itineraries.RemoveDestination(r.Context(), caller(r).UserID, itID, linkID); err != nil {
		s.fail(w, r, err, "itinerary destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b LinkRequest) toDomain() domain.Link {
	l := domain.Link{
		DestinationID: b.DestinationID,
		VisitTime:     b.VisitTime,
		Notes:         b.Notes,
	}
	if b.VisitDate != nil {
		t := b.VisitDate.Time
		l.VisitDate = &t
	}
	return l
}
