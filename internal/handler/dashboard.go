package handler

import "net/http"

// GetDashboard handles GET /dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard.Get(r.Context(), caller(r).UserID)
	if err != nil {
		s.fail(w, r, err, "dashboard")
		return
	}
	recent := make([]Itinerary, len(d.RecentItineraries))
	for i, it := range d.RecentItineraries {
		recent[i] = itineraryToResponse(it)
	}
	writeJSON(w, http.StatusOK, Dashboard{
		ItineraryCount:    d.ItineraryCount,
		SavedCount:        d.SavedCount,
		TotalBudget:       money(d.TotalBudget),
		UpcomingTrips:     d.UpcomingTrips,
		RecentItineraries: recent,
	})
}
