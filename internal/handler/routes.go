package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/smarttrav/internal/middleware"
)

// RouteOptions carries the route-scoped middleware.
type RouteOptions struct {
	// Authenticator verifies bearer tokens for the protected routes.
	Authenticator middleware.Authenticator
	// AuthLimiter throttles the credential endpoints. Optional.
	AuthLimiter func(http.Handler) http.Handler
}

// Routes registers every endpoint of the API on r.
func (s *Server) Routes(r chi.Router, opts RouteOptions) {
	requireAuth := middleware.RequireAuth(opts.Authenticator)
	limit := opts.AuthLimiter
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/auth", func(r chi.Router) {
		r.With(limit).Post("/register", s.Register)
		r.With(limit).Post("/login", s.Login)
		r.With(requireAuth).Post("/logout", s.Logout)
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Get("/{id}", s.GetDestination)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireAdmin)
			r.Post("/", s.CreateDestination)
			r.Put("/{id}", s.UpdateDestination)
			r.Post("/{id}/image", s.UploadDestinationImage)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/me", s.GetMe)
		r.Put("/me", s.UpdateMe)
		r.Get("/dashboard", s.GetDashboard)

		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/", s.CreateItinerary)
			r.Get("/", s.ListItineraries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetItinerary)
				r.Put("/", s.UpdateItinerary)
				r.Delete("/", s.DeleteItinerary)
				r.Get("/export", s.ExportItinerary)

				r.Post("/destinations", s.AddItineraryDestination)
				r.Put("/destinations/{linkId}", s.UpdateItineraryDestination)
				r.Delete("/destinations/{linkId}", s.RemoveItineraryDestination)

				r.Post("/expenses", s.AddExpense)
				r.Get("/expenses", s.ListExpenses)
			})
		})

		r.Route("/saved", func(r chi.Router) {
			r.Get("/", s.ListSaved)
			r.Put("/{destinationId}", s.SaveDestination)
			r.Delete("/{destinationId}", s.UnsaveDestination)
		})
	})
}
