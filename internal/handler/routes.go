package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milelog/backend/internal/middleware"
	"github.com/milelog/backend/spec"
)

// Routes assembles the API router. Everything under /api except login and
// navigate requires a valid bearer token for the live session.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", spec.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.Login)

		// Navigation resolves for both session states; the token merely
		// flips which route table applies.
		r.With(middleware.OptionalAuth(s.tokens, s.sessionState)).
			Get("/navigate", s.Navigate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.tokens, s.sessionState))

			r.Post("/auth/logout", s.Logout)
			r.Get("/auth/me", s.Me)

			r.Post("/trips", s.CreateTrip)
			r.Get("/trips", s.ListTrips)
			r.Delete("/trips/{tripID}", s.DeleteTrip)

			r.Post("/vehicles", s.CreateVehicle)
			r.Get("/vehicles", s.ListVehicles)
			r.Put("/vehicles/{vehicleID}", s.UpdateVehicle)
			r.Delete("/vehicles/{vehicleID}", s.DeleteVehicle)

			r.Get("/reports", s.GetReport)
			r.Get("/reports/export", s.GetExport)

			r.Post("/ai/suggest-purpose", s.SuggestPurpose)
			r.Post("/ai/notes", s.GenerateNotes)
			r.Post("/ai/insights", s.GetInsights)

			r.Get("/location", s.GetLocation)
		})
	})

	return r
}
