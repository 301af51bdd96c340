// Package difficulty recommends the next difficulty level from recent
// session scores.
package difficulty

import (
	"math"

	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/scoring"
	"github.com/vytor/cognitrain/internal/trend"
)

// Advise decides whether to raise, keep or lower the level. Increase is
// evaluated before Decrease, and both thresholds are strict.
func Advise(currentLevel int, recent []models.ScoreBreakdown, cfg Config) models.DifficultyDecision {
	scores := make([]float64, len(recent))
	for i, b := range recent {
		scores[i] = float64(b.OverallScore)
	}
	return AdviseScores(currentLevel, scores, cfg)
}

// AdviseScores is Advise over bare overall scores, oldest first.
func AdviseScores(currentLevel int, scores []float64, cfg Config) models.DifficultyDecision {
	level := cfg.clampLevel(currentLevel)
	if len(scores) == 0 {
		return models.DifficultyDecision{
			RecommendedLevel: level,
			Direction:        models.DirectionMaintain,
			Confidence:       0,
			ReasonCode:       models.ReasonInsufficientData,
		}
	}

	avg := average(scores)
	improvement := trend.ImprovementPercent(scores)

	switch {
	case avg > cfg.IncreaseThreshold && improvement >= 0 && level < cfg.MaxLevel:
		return models.DifficultyDecision{
			RecommendedLevel: cfg.clampLevel(level + 1),
			Direction:        models.DirectionIncrease,
			Confidence:       unit((avg - cfg.IncreaseThreshold) / (100 - cfg.IncreaseThreshold)),
			ReasonCode:       models.ReasonStrongPerformance,
		}
	case (avg < cfg.DecreaseThreshold || improvement < cfg.TrendDecreaseThreshold) && level > cfg.MinLevel:
		return models.DifficultyDecision{
			RecommendedLevel: cfg.clampLevel(level - 1),
			Direction:        models.DirectionDecrease,
			Confidence:       unit((cfg.DecreaseThreshold - avg) / cfg.DecreaseThreshold),
			ReasonCode:       models.ReasonWeakPerformance,
		}
	default:
		return models.DifficultyDecision{
			RecommendedLevel: level,
			Direction:        models.DirectionMaintain,
			Confidence:       unit(cfg.SteadyConfidence),
			ReasonCode:       models.ReasonSteadyPerformance,
		}
	}
}

// AdviseSessions scores raw telemetry with calc before advising.
func AdviseSessions(currentLevel int, sessions []models.SessionMetrics, calc *scoring.Calculator, cfg Config) models.DifficultyDecision {
	recent := make([]models.ScoreBreakdown, len(sessions))
	for i, m := range sessions {
		recent[i] = calc.Score(m)
	}
	return Advise(currentLevel, recent, cfg)
}

// IsReadyToAdvance reports a confident increase backed by enough samples.
func IsReadyToAdvance(currentLevel int, recent []models.ScoreBreakdown, cfg Config) bool {
	if len(recent) < cfg.MinSamplesForDecision {
		return false
	}
	d := Advise(currentLevel, recent, cfg)
	return d.Direction == models.DirectionIncrease && d.Confidence > cfg.ReadyConfidence
}

// Advisor binds a Config for callers that advise repeatedly.
type Advisor struct {
	cfg Config
}

func NewAdvisor(cfg Config) *Advisor {
	return &Advisor{cfg: cfg}
}

func (a *Advisor) Config() Config {
	return a.cfg
}

func (a *Advisor) Advise(currentLevel int, recent []models.ScoreBreakdown) models.DifficultyDecision {
	return Advise(currentLevel, recent, a.cfg)
}

func (a *Advisor) IsReadyToAdvance(currentLevel int, recent []models.ScoreBreakdown) bool {
	return IsReadyToAdvance(currentLevel, recent, a.cfg)
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func unit(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
