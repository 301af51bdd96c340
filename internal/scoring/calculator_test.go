package scoring_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/scoring"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func newCalc() *scoring.Calculator {
	return scoring.NewCalculator(scoring.DefaultConfig())
}

func assertInRange(t *testing.T, b models.ScoreBreakdown) {
	t.Helper()
	for name, v := range map[string]float64{
		"accuracy":    b.AccuracyPercent,
		"efficiency":  b.EfficiencyPercent,
		"consistency": b.ConsistencyPercent,
		"overall":     float64(b.OverallScore),
	} {
		assert.False(t, math.IsNaN(v), "%s is NaN", name)
		assert.GreaterOrEqual(t, v, 0.0, "%s below 0", name)
		assert.LessOrEqual(t, v, 100.0, "%s above 100", name)
	}
	if b.SpeedScore != nil {
		assert.GreaterOrEqual(t, *b.SpeedScore, 0.0)
		assert.LessOrEqual(t, *b.SpeedScore, 100.0)
	}
	assert.False(t, math.IsNaN(b.DifficultyBonus))
	assert.False(t, math.IsNaN(b.TimeAdjustment))
}

func TestScore_ZeroMoves(t *testing.T) {
	b := newCalc().Score(models.SessionMetrics{DifficultyLevel: 1})

	assertInRange(t, b)
	assert.Equal(t, 0.0, b.AccuracyPercent)
	assert.Equal(t, 0.0, b.EfficiencyPercent)
	assert.Equal(t, 100.0, b.ConsistencyPercent)
	assert.Nil(t, b.SpeedScore)
	assert.Equal(t, 0.0, b.TimeAdjustment, "zero elapsed time carries no timing signal")
	// 0.8*0 + 0.2*100 + difficulty bonus 20*1/5
	assert.Equal(t, 24, b.OverallScore)
}

func TestScore_KnownBlendWithoutSpeed(t *testing.T) {
	b := newCalc().Score(models.SessionMetrics{
		GameType:        "memory-match",
		DifficultyLevel: 1,
		TotalMoves:      20,
		CorrectMatches:  18,
		ErrorCount:      2,
		ElapsedSeconds:  45, // exactly the expected time at level 1
	})

	assert.InDelta(t, 90.0, b.AccuracyPercent, 1e-9)
	assert.InDelta(t, 90.0, b.EfficiencyPercent, 1e-9)
	assert.InDelta(t, 90.0, b.ConsistencyPercent, 1e-9)
	assert.InDelta(t, 4.0, b.DifficultyBonus, 1e-9)
	assert.InDelta(t, 0.0, b.TimeAdjustment, 1e-9)
	assert.Equal(t, 94, b.OverallScore)
}

func TestScore_KnownBlendWithSpeed(t *testing.T) {
	b := newCalc().Score(models.SessionMetrics{
		GameType:        "reaction",
		DifficultyLevel: 1,
		TotalMoves:      10,
		CorrectMatches:  6,
		ErrorCount:      4,
		ElapsedSeconds:  45,
		ReactionTimeMs:  ptrF(1500),
	})

	require.NotNil(t, b.SpeedScore)
	assert.InDelta(t, 75.0, *b.SpeedScore, 1e-9)
	// primary (3*60 + 3*60 + 2*75)/8 = 63.75; 0.8*63.75 + 0.2*60 = 63; +4 bonus
	assert.Equal(t, 67, b.OverallScore)
}

func TestScore_SpeedOnlyWhenNoEfficiencySignal(t *testing.T) {
	cfg := scoring.DefaultConfig()
	cfg.EfficiencyFromAccuracy = false
	cfg.MaxDifficultyBonus = 0
	calc := scoring.NewCalculator(cfg)

	b := calc.Score(models.SessionMetrics{
		DifficultyLevel: 1,
		TotalMoves:      10,
		CorrectMatches:  10,
		ReactionTimeMs:  ptrF(3000), // one baseline: speed 50
	})

	// accuracy 60% / speed 40% of the primary share: 0.6*100 + 0.4*50 = 80
	// 0.8*80 + 0.2*100 = 84
	assert.Equal(t, 84, b.OverallScore)
}

func TestScore_OptimalMovesEfficiency(t *testing.T) {
	b := newCalc().Score(models.SessionMetrics{
		DifficultyLevel: 2,
		TotalMoves:      16,
		CorrectMatches:  8,
		OptimalMoves:    ptrI(8),
	})
	assert.InDelta(t, 50.0, b.EfficiencyPercent, 1e-9)

	b = newCalc().Score(models.SessionMetrics{
		DifficultyLevel: 2,
		TotalMoves:      4,
		CorrectMatches:  4,
		OptimalMoves:    ptrI(8),
	})
	assert.Equal(t, 100.0, b.EfficiencyPercent, "efficiency is clamped")
}

func TestScore_TimeAdjustment(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  int
		expected float64
	}{
		{name: "on time", elapsed: 45, expected: 0},
		{name: "a third faster", elapsed: 30, expected: 10.0 / 3},
		{name: "nearly instant", elapsed: 1, expected: 10 * 44.0 / 45},
		{name: "half again slower", elapsed: 67, expected: -10 * 22.0 / 45},
		{name: "far too slow is capped", elapsed: 900, expected: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newCalc().Score(models.SessionMetrics{
				DifficultyLevel: 1,
				TotalMoves:      10,
				CorrectMatches:  5,
				ElapsedSeconds:  tt.elapsed,
			})
			assert.InDelta(t, tt.expected, b.TimeAdjustment, 1e-9)
		})
	}
}

func TestBaseline_Interpolation(t *testing.T) {
	calc := newCalc()

	assert.Equal(t, 3000.0, calc.Baseline(1))
	assert.Equal(t, 2500.0, calc.Baseline(2))
	assert.Equal(t, 2000.0, calc.Baseline(3))
	assert.Equal(t, 1500.0, calc.Baseline(4))
	assert.Equal(t, 1000.0, calc.Baseline(5))
	assert.Equal(t, 3000.0, calc.Baseline(-4), "held at the lowest level")
	assert.Equal(t, 1000.0, calc.Baseline(9), "held at the highest level")
}

func TestScore_HarderLevelDemandsFasterReactions(t *testing.T) {
	calc := newCalc()
	easy := calc.Score(models.SessionMetrics{DifficultyLevel: 1, TotalMoves: 1, CorrectMatches: 1, ReactionTimeMs: ptrF(1200)})
	hard := calc.Score(models.SessionMetrics{DifficultyLevel: 5, TotalMoves: 1, CorrectMatches: 1, ReactionTimeMs: ptrF(1200)})

	assert.Greater(t, *easy.SpeedScore, *hard.SpeedScore)
}

func TestScore_ClampsInvalidInput(t *testing.T) {
	inputs := []models.SessionMetrics{
		{DifficultyLevel: -3, TotalMoves: -10, CorrectMatches: -2, ErrorCount: -1, ElapsedSeconds: -60},
		{DifficultyLevel: 99, TotalMoves: 5, CorrectMatches: 50, ErrorCount: 500, ElapsedSeconds: 1},
		{DifficultyLevel: 3, TotalMoves: 0, CorrectMatches: 7, ReactionTimeMs: ptrF(-200)},
		{DifficultyLevel: 3, TotalMoves: 10, CorrectMatches: 5, ReactionTimeMs: ptrF(math.NaN())},
		{DifficultyLevel: 3, TotalMoves: 10, CorrectMatches: 5, ReactionTimeMs: ptrF(math.Inf(1))},
		{DifficultyLevel: 2, TotalMoves: 10, CorrectMatches: 5, OptimalMoves: ptrI(-4)},
	}

	calc := newCalc()
	for _, in := range inputs {
		assertInRange(t, calc.Score(in))
	}
}

func TestScore_AccuracyMonotonic(t *testing.T) {
	calc := newCalc()
	prev := -1.0
	for correct := 0; correct <= 12; correct++ {
		b := calc.Score(models.SessionMetrics{
			DifficultyLevel: 3,
			TotalMoves:      12,
			CorrectMatches:  correct,
			ErrorCount:      2,
			ElapsedSeconds:  60,
		})
		assert.GreaterOrEqual(t, b.AccuracyPercent, prev)
		prev = b.AccuracyPercent
	}
}

func TestScore_Deterministic(t *testing.T) {
	m := models.SessionMetrics{
		GameType:        "sequence",
		DifficultyLevel: 4,
		TotalMoves:      33,
		CorrectMatches:  27,
		ErrorCount:      6,
		ElapsedSeconds:  81,
		ReactionTimeMs:  ptrF(1333.3),
		CompletedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	calc := newCalc()
	assert.Equal(t, calc.Score(m), calc.Score(m))
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, scoring.DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*scoring.Config)
		errMsg string
	}{
		{"min level zero", func(c *scoring.Config) { c.MinLevel = 0 }, "min level"},
		{"max below min", func(c *scoring.Config) { c.MaxLevel = 0 }, "below min level"},
		{"max above ten", func(c *scoring.Config) { c.MaxLevel = 11 }, "<= 10"},
		{"negative weight", func(c *scoring.Config) { c.SpeedWeight = -1 }, "non-negative"},
		{"zero accuracy weight", func(c *scoring.Config) { c.AccuracyWeight = 0 }, "accuracy weight"},
		{"consistency above one", func(c *scoring.Config) { c.ConsistencyWeight = 1.5 }, "consistency weight"},
		{"no baselines", func(c *scoring.Config) { c.SpeedBaselines = nil }, "speed baseline"},
		{"zero baseline", func(c *scoring.Config) { c.SpeedBaselines = []scoring.Baseline{{Level: 1, Millis: 0}} }, "must be positive"},
		{"duplicate baseline", func(c *scoring.Config) {
			c.SpeedBaselines = []scoring.Baseline{{Level: 1, Millis: 10}, {Level: 1, Millis: 20}}
		}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scoring.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
