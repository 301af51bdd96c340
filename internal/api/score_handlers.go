package api

import (
	"net/http"

	"github.com/vytor/cognitrain/internal/errors"
	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/models"
)

// handleScore scores a metrics body without storing it.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var metrics models.SessionMetrics
	if err := decodeJSON(w, r, &metrics); err != nil {
		handleError(w, r, err)
		return
	}

	breakdown := s.Calculator.Score(metrics)
	log.Debug("scored ad-hoc session: game_type=%s, overall=%d", metrics.GameType, breakdown.OverallScore)
	writeJSON(w, r, http.StatusOK, breakdown)
}

type adviseRequest struct {
	CurrentLevel *int                    `json:"current_level"`
	Scores       []int                   `json:"scores,omitempty"`
	Sessions     []models.SessionMetrics `json:"sessions,omitempty"`
}

type adviseResponse struct {
	Decision       models.DifficultyDecision `json:"decision"`
	ReadyToAdvance bool                      `json:"ready_to_advance"`
}

// handleAdvise advises on bare overall scores or on raw sessions, oldest first.
func (s *Server) handleAdvise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req adviseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CurrentLevel == nil {
		handleError(w, r, errors.NewValidationError("current_level", "is required"))
		return
	}
	if len(req.Scores) > 0 && len(req.Sessions) > 0 {
		handleError(w, r, errors.NewBadRequestError("send either scores or sessions, not both"))
		return
	}

	recent := make([]models.ScoreBreakdown, 0, len(req.Scores)+len(req.Sessions))
	for _, score := range req.Scores {
		recent = append(recent, models.ScoreBreakdown{OverallScore: score})
	}
	for _, m := range req.Sessions {
		recent = append(recent, s.Calculator.Score(m))
	}

	resp := adviseResponse{
		Decision:       s.Advisor.Advise(*req.CurrentLevel, recent),
		ReadyToAdvance: s.Advisor.IsReadyToAdvance(*req.CurrentLevel, recent),
	}
	log.Debug("advised: level=%d, samples=%d, direction=%s", *req.CurrentLevel, len(recent), resp.Decision.Direction)
	writeJSON(w, r, http.StatusOK, resp)
}
