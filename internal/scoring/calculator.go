// Package scoring turns raw session telemetry into normalized sub-scores and
// a single 0-100 performance score.
package scoring

import (
	"math"

	"github.com/vytor/cognitrain/internal/models"
)

// Calculator is stateless after construction and safe for concurrent use.
type Calculator struct {
	cfg       Config
	baselines []Baseline
}

func NewCalculator(cfg Config) *Calculator {
	if len(cfg.SpeedBaselines) == 0 {
		cfg.SpeedBaselines = DefaultConfig().SpeedBaselines
	}
	return &Calculator{cfg: cfg, baselines: sortedBaselines(cfg.SpeedBaselines)}
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// Score computes the breakdown for one session. It never panics and every
// returned number is finite and within [0,100].
func (c *Calculator) Score(m models.SessionMetrics) models.ScoreBreakdown {
	level := c.ClampLevel(m.DifficultyLevel)
	total := nonNegative(m.TotalMoves)
	correct := nonNegative(m.CorrectMatches)
	errs := nonNegative(m.ErrorCount)
	moves := float64(max(total, 1))

	var b models.ScoreBreakdown
	b.AccuracyPercent = clampPercent(float64(correct) / moves * 100)
	b.ConsistencyPercent = clampPercent(100 - float64(errs)/moves*100)

	hasEfficiency := true
	switch {
	case m.OptimalMoves != nil:
		if total > 0 {
			b.EfficiencyPercent = clampPercent(float64(nonNegative(*m.OptimalMoves)) / float64(total) * 100)
		}
	case c.cfg.EfficiencyFromAccuracy && total > 0:
		b.EfficiencyPercent = b.AccuracyPercent
	default:
		hasEfficiency = false
	}

	if m.ReactionTimeMs != nil {
		speed := c.speedScore(*m.ReactionTimeMs, level)
		b.SpeedScore = &speed
	}

	blend := c.blend(b, hasEfficiency)
	b.DifficultyBonus = finite(c.cfg.MaxDifficultyBonus * float64(level) / float64(c.cfg.MaxLevel))
	b.TimeAdjustment = c.timeAdjustment(m.ElapsedSeconds, level)

	overall := finite(math.Round(blend + b.DifficultyBonus + b.TimeAdjustment))
	b.OverallScore = int(math.Min(100, math.Max(0, overall)))
	return b
}

// ClampLevel bounds a difficulty level to the configured range.
func (c *Calculator) ClampLevel(level int) int {
	return min(max(level, c.cfg.MinLevel), c.cfg.MaxLevel)
}

// Baseline returns the reaction-time baseline for a level, interpolating
// linearly between configured points and holding the end values outside them.
func (c *Calculator) Baseline(level int) float64 {
	bs := c.baselines
	if level <= bs[0].Level {
		return bs[0].Millis
	}
	last := bs[len(bs)-1]
	if level >= last.Level {
		return last.Millis
	}
	for i := 1; i < len(bs); i++ {
		lo, hi := bs[i-1], bs[i]
		if level > hi.Level {
			continue
		}
		frac := float64(level-lo.Level) / float64(hi.Level-lo.Level)
		return lo.Millis + (hi.Millis-lo.Millis)*frac
	}
	return last.Millis
}

func (c *Calculator) speedScore(reactionMs float64, level int) float64 {
	base := c.Baseline(level)
	if base <= 0 {
		return 0
	}
	rt := math.Max(0, finite(reactionMs))
	return clampPercent(100 - c.cfg.SpeedPenaltyPerBaseline*rt/base)
}

// blend weighs the primary components that are present, rebalanced to fill
// the share left by consistency.
func (c *Calculator) blend(b models.ScoreBreakdown, hasEfficiency bool) float64 {
	weight := c.cfg.AccuracyWeight
	sum := c.cfg.AccuracyWeight * b.AccuracyPercent
	if hasEfficiency {
		weight += c.cfg.EfficiencyWeight
		sum += c.cfg.EfficiencyWeight * b.EfficiencyPercent
	}
	if b.SpeedScore != nil {
		weight += c.cfg.SpeedWeight
		sum += c.cfg.SpeedWeight * *b.SpeedScore
	}

	primary := b.AccuracyPercent
	if weight > 0 {
		primary = sum / weight
	}
	cw := math.Min(1, math.Max(0, c.cfg.ConsistencyWeight))
	return finite((1-cw)*primary + cw*b.ConsistencyPercent)
}

// timeAdjustment rewards finishing under the expected time and penalizes
// running over it, both capped at MaxTimeBonus. Zero elapsed time means the
// game did not report timing.
func (c *Calculator) timeAdjustment(elapsedSeconds, level int) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	expected := c.cfg.BaseSeconds + c.cfg.PerLevelSeconds*float64(level)
	if expected <= 0 {
		return 0
	}
	elapsed := float64(elapsedSeconds)
	ratio := (expected - elapsed) / expected
	if ratio >= 0 {
		return finite(c.cfg.MaxTimeBonus * ratio)
	}
	return finite(math.Max(-c.cfg.MaxTimeBonus, c.cfg.MaxTimeBonus*ratio))
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampPercent(v float64) float64 {
	return math.Min(100, math.Max(0, finite(v)))
}
