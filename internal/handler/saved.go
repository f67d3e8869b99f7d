package handler

import (
	"net/http"
)

// ListSaved handles GET /saved.
func (s *Server) ListSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := s.saved.List(r.Context(), caller(r).UserID)
	if err != nil {
		s.fail(w, r, err, "saved destination")
		return
	}
	out := make([]SavedDestination, len(saved))
	for i, sd := range saved {
		out[i] = SavedDestination{
			ID:          sd.ID,
			Destination: s.destinationToResponse(sd.Destination),
			SavedAt:     sd.SavedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// SaveDestination handles PUT /saved/{destinationId}. Saving twice is a no-op.
func (s *Server) SaveDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if err := s.saved.Save(r.Context(), caller(r).UserID, id); err != nil {
		s.fail(w, r, err, "destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnsaveDestination handles DELETE /saved/{destinationId}.
func (s *Server) UnsaveDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if err := s.saved.Remove(r.Context(), caller(r).UserID, id); err != nil {
		s.fail(w, r, err, "saved destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
