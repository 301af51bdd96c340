package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var level *int
	if v, ok, err := queryInt(r, "level"); err != nil {
		handleError(w, r, err)
		return
	} else if ok {
		level = &v
	}

	rec, err := s.ProgressService.Recommend(r.Context(), profileID, r.URL.Query().Get("game"), level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.ProgressService.Trends(r.Context(), profileID, strings.TrimSpace(r.URL.Query().Get("game")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summaries, err := s.ProgressService.ListSummaries(r.Context(), profileID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summaries)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.ProgressService.GetSummary(r.Context(), profileID, chi.URLParam(r, "game"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
