package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/vytor/cognitrain/internal/errors"
	"github.com/vytor/cognitrain/internal/jobs"
	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/repository"
	"github.com/vytor/cognitrain/internal/scoring"
)

// SessionService records and lists scored sessions
type SessionService interface {
	RecordSession(ctx context.Context, profileID int64, metrics models.SessionMetrics) (*models.Session, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)
	GetSession(ctx context.Context, profileID, sessionID int64) (*models.Session, error)
}

type sessionService struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	calc        *scoring.Calculator
	jobQueue    jobs.JobQueue
	now         func() time.Time
}

// NewSessionService creates a new SessionService. jobQueue may be nil, in
// which case progress summaries are not refreshed after recording.
func NewSessionService(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	calc *scoring.Calculator,
	jobQueue jobs.JobQueue,
) SessionService {
	return &sessionService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		calc:        calc,
		jobQueue:    jobQueue,
		now:         time.Now,
	}
}

func (s *sessionService) RecordSession(ctx context.Context, profileID int64, metrics models.SessionMetrics) (*models.Session, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	log.Debug("recording session: game_type=%s, level=%d", metrics.GameType, metrics.DifficultyLevel)

	metrics.GameType = strings.TrimSpace(metrics.GameType)
	if err := s.validate(metrics); err != nil {
		return nil, err
	}
	if err := requireProfile(ctx, s.profileRepo, profileID); err != nil {
		return nil, err
	}
	if metrics.CompletedAt.IsZero() {
		metrics.CompletedAt = s.now()
	}

	session := models.Session{
		ProfileID: profileID,
		ScoredSession: models.ScoredSession{
			Metrics: metrics,
			Score:   s.calc.Score(metrics),
		},
	}

	id, err := s.sessionRepo.Append(ctx, session)
	if err != nil {
		log.Error("failed to store session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	session.ID = id
	log.Info("session recorded: id=%d, overall_score=%d", id, session.Score.OverallScore)

	if s.jobQueue != nil {
		if err := s.jobQueue.EnqueueSummaryRefresh(profileID, metrics.GameType); err != nil {
			// The summary is rebuilt on the next session or on demand.
			log.Warn("failed to enqueue summary refresh: %v", err)
		}
	}

	return &session, nil
}

func (s *sessionService) validate(m models.SessionMetrics) error {
	cfg := s.calc.Config()
	switch {
	case m.GameType == "":
		return errors.NewValidationError("game_type", "cannot be empty")
	case m.DifficultyLevel < cfg.MinLevel || m.DifficultyLevel > cfg.MaxLevel:
		return errors.NewValidationError("difficulty_level", levelRange(cfg.MinLevel, cfg.MaxLevel))
	case m.TotalMoves < 0:
		return errors.NewValidationError("total_moves", "cannot be negative")
	case m.CorrectMatches < 0:
		return errors.NewValidationError("correct_matches", "cannot be negative")
	case m.ErrorCount < 0:
		return errors.NewValidationError("error_count", "cannot be negative")
	case m.ElapsedSeconds < 0:
		return errors.NewValidationError("elapsed_seconds", "cannot be negative")
	case m.ReactionTimeMs != nil && (*m.ReactionTimeMs < 0 || math.IsNaN(*m.ReactionTimeMs) || math.IsInf(*m.ReactionTimeMs, 0)):
		return errors.NewValidationError("reaction_time_ms", "must be a non-negative number")
	case m.OptimalMoves != nil && *m.OptimalMoves < 0:
		return errors.NewValidationError("optimal_moves", "cannot be negative")
	}
	return nil
}

func (s *sessionService) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithField("profile_id", filter.ProfileID)
	log.Debug("listing sessions: game_type=%s, limit=%d", filter.GameType, filter.Limit)

	if filter.Limit < 0 {
		return nil, errors.NewValidationError("limit", "cannot be negative")
	}
	if err := requireProfile(ctx, s.profileRepo, filter.ProfileID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.History(ctx, filter)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

func (s *sessionService) GetSession(ctx context.Context, profileID, sessionID int64) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting session: profile_id=%d, session_id=%d", profileID, sessionID)

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	// Sessions of other profiles are reported as missing.
	if session == nil || session.ProfileID != profileID {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return session, nil
}
