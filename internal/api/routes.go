package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 15 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Post("/score", s.handleScore)
		r.Post("/advise", s.handleAdvise)

		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Route("/profiles/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProfile)
			r.Delete("/", s.handleDeleteProfile)

			r.Get("/sessions", s.handleListSessions)
			r.Post("/sessions", s.handleRecordSession)
			r.Get("/sessions/{sessionID}", s.handleGetSession)

			r.Get("/difficulty", s.handleDifficulty)
			r.Get("/trends", s.handleTrends)
			r.Get("/summaries", s.handleListSummaries)
			r.Get("/summaries/{game}", s.handleGetSummary)
		})
	})

	return r
}
