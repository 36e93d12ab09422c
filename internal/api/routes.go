package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Get("/courses", s.handleCourses)
		r.Get("/units/{unitID}/cards", s.handleUnitCards)

		r.Get("/profiles", s.handleProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Post("/profiles/{id}/select", s.handleSelectProfile)
		r.Post("/profiles/{id}/delete", s.handleDeleteProfile)

		// Everything below needs an active profile.
		r.Group(func(r chi.Router) {
			r.Use(s.requireProfile)
			r.Get("/progress", s.handleProgress)
			r.Get("/reviews/due", s.handleDueCards)
			r.Post("/units/{unitID}/session", s.handleStartSession)
			r.Post("/reviews", s.handleReview)
			r.Get("/placement", s.handleBuildPlacement)
			r.Post("/placement", s.handleScorePlacement)
			r.Get("/placement/latest", s.handleLatestPlacement)
		})
	})

	return r
}
