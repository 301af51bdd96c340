package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vytor/cognitrain/internal/difficulty"
	"github.com/vytor/cognitrain/internal/encouragement"
	"github.com/vytor/cognitrain/internal/errors"
	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/repository"
	"github.com/vytor/cognitrain/internal/trend"
)

// ProgressService turns a profile's session history into difficulty
// recommendations and trend summaries.
type ProgressService interface {
	Recommend(ctx context.Context, profileID int64, gameType string, currentLevel *int) (*models.Recommendation, error)
	Trends(ctx context.Context, profileID int64, gameType string) (*models.TrendSummary, error)
	RefreshSummary(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error)
	GetSummary(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error)
	ListSummaries(ctx context.Context, profileID int64) ([]models.ProgressSummary, error)
}

type progressService struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	summaryRepo repository.SummaryRepository
	advisor     *difficulty.Advisor
	annotator   encouragement.Annotator
	window      int
	now         func() time.Time
}

// NewProgressService creates a new ProgressService. window is the number of
// most recent sessions the advisor looks at.
func NewProgressService(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	summaryRepo repository.SummaryRepository,
	advisor *difficulty.Advisor,
	annotator encouragement.Annotator,
	window int,
) ProgressService {
	if window <= 0 {
		window = 5
	}
	if annotator == nil {
		annotator = encouragement.Static{}
	}
	return &progressService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		summaryRepo: summaryRepo,
		advisor:     advisor,
		annotator:   annotator,
		window:      window,
		now:         time.Now,
	}
}

func (s *progressService) Recommend(ctx context.Context, profileID int64, gameType string, currentLevel *int) (*models.Recommendation, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	gameType = strings.TrimSpace(gameType)
	log.Debug("recommending difficulty: game_type=%s", gameType)

	if gameType == "" {
		return nil, errors.NewValidationError("game", "cannot be empty")
	}
	cfg := s.advisor.Config()
	if currentLevel != nil && (*currentLevel < cfg.MinLevel || *currentLevel > cfg.MaxLevel) {
		return nil, errors.NewValidationError("level", levelRange(cfg.MinLevel, cfg.MaxLevel))
	}
	if err := requireProfile(ctx, s.profileRepo, profileID); err != nil {
		return nil, err
	}

	recent, err := s.sessionRepo.History(ctx, models.SessionFilter{
		ProfileID: profileID,
		GameType:  gameType,
		Limit:     s.window,
	})
	if err != nil {
		log.Error("failed to load recent sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.recommend(ctx, gameType, currentLevel, recent), nil
}

func (s *progressService) recommend(ctx context.Context, gameType string, currentLevel *int, recent []models.Session) *models.Recommendation {
	cfg := s.advisor.Config()
	level := cfg.MinLevel
	switch {
	case currentLevel != nil:
		level = *currentLevel
	case len(recent) > 0:
		level = recent[len(recent)-1].Metrics.DifficultyLevel
	}
	level = min(max(level, cfg.MinLevel), cfg.MaxLevel)

	breakdowns := make([]models.ScoreBreakdown, len(recent))
	for i, session := range recent {
		breakdowns[i] = session.Score
	}

	decision := s.advisor.Advise(level, breakdowns)
	rec := &models.Recommendation{
		GameType:       gameType,
		CurrentLevel:   level,
		Decision:       decision,
		ReadyToAdvance: s.advisor.IsReadyToAdvance(level, breakdowns),
		SampleSize:     len(recent),
	}

	msg, err := s.annotator.Annotate(ctx, gameType, decision)
	if err != nil {
		logger.FromContext(ctx).Warn("encouragement unavailable: %v", err)
	} else {
		rec.Message = msg
	}
	return rec
}

// Trends summarizes the whole history; an empty gameType spans every game.
func (s *progressService) Trends(ctx context.Context, profileID int64, gameType string) (*models.TrendSummary, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	gameType = strings.TrimSpace(gameType)
	log.Debug("computing trends: game_type=%s", gameType)

	if err := requireProfile(ctx, s.profileRepo, profileID); err != nil {
		return nil, err
	}

	history, err := s.sessionRepo.History(ctx, models.SessionFilter{ProfileID: profileID, GameType: gameType})
	if err != nil {
		log.Error("failed to load history: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := trend.Summarize(scoredSessions(history), s.now())
	return &summary, nil
}

func (s *progressService) RefreshSummary(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	log.Debug("refreshing summary: game_type=%s", gameType)

	history, err := s.sessionRepo.History(ctx, models.SessionFilter{ProfileID: profileID, GameType: gameType})
	if err != nil {
		log.Error("failed to load history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(history) == 0 {
		return nil, errors.NewNotFoundError("sessions for game", gameType)
	}

	recent := history[max(0, len(history)-s.window):]
	now := s.now()
	rec := s.recommend(ctx, gameType, nil, recent)

	summary := models.ProgressSummary{
		ProfileID:    profileID,
		GameType:     gameType,
		CurrentLevel: rec.CurrentLevel,
		Decision:     rec.Decision,
		Trend:        trend.Summarize(scoredSessions(history), now),
		UpdatedAt:    now,
	}
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		log.Error("failed to store summary: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("summary refreshed: game_type=%s, direction=%s, recommended_level=%d",
		gameType, summary.Decision.Direction, summary.Decision.RecommendedLevel)
	return &summary, nil
}

func (s *progressService) GetSummary(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting summary: profile_id=%d, game_type=%s", profileID, gameType)

	summary, err := s.summaryRepo.Get(ctx, profileID, gameType)
	if err != nil {
		log.Error("failed to get summary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if summary == nil {
		return nil, errors.NewNotFoundError("progress summary", gameType)
	}
	return summary, nil
}

func (s *progressService) ListSummaries(ctx context.Context, profileID int64) ([]models.ProgressSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing summaries: profile_id=%d", profileID)

	if err := requireProfile(ctx, s.profileRepo, profileID); err != nil {
		return nil, err
	}

	summaries, err := s.summaryRepo.ListForProfile(ctx, profileID)
	if err != nil {
		log.Error("failed to list summaries: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Games whose refresh job was dropped get their summary built now.
	gameTypes, err := s.sessionRepo.GameTypes(ctx, profileID)
	if err != nil {
		log.Error("failed to list game types: %v", err)
		return nil, errors.NewInternalError(err)
	}
	cached := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		cached[summary.GameType] = true
	}
	for _, gameType := range gameTypes {
		if cached[gameType] {
			continue
		}
		summary, err := s.RefreshSummary(ctx, profileID, gameType)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].GameType < summaries[j].GameType })
	if summaries == nil {
		summaries = []models.ProgressSummary{}
	}
	return summaries, nil
}

func scoredSessions(sessions []models.Session) []models.ScoredSession {
	out := make([]models.ScoredSession, len(sessions))
	for i, s := range sessions {
		out[i] = s.ScoredSession
	}
	return out
}

func levelRange(lo, hi int) string {
	return fmt.Sprintf("must be between %d and %d", lo, hi)
}
