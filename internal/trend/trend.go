// Package trend computes improvement, velocity and activity streaks over a
// chronologically ordered session history.
package trend

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/cognitrain/internal/models"
)

const day = 24 * time.Hour

// ImprovementPercent compares the mean of the recent half of scores with
// the mean of the early half. With an odd count the extra score belongs to
// the recent half.
func ImprovementPercent(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	half := len(scores) / 2
	early := mean(scores[:half])
	if early == 0 {
		return 0
	}
	recent := mean(scores[half:])
	return finite((recent - early) * 100 / early)
}

// VelocityPerWeek is the score change per week between the first and last
// session. Histories spanning less than a day report 0.
func VelocityPerWeek(history []models.ScoredSession) float64 {
	if len(history) < 2 {
		return 0
	}
	first, last := history[0], history[len(history)-1]
	span := last.Metrics.CompletedAt.Sub(first.Metrics.CompletedAt)
	if span < day {
		return 0
	}
	weeks := span.Hours() / 24 / 7
	delta := float64(last.Score.OverallScore - first.Score.OverallScore)
	return finite(delta / weeks)
}

// Streaks counts consecutive calendar days of activity, in now's location.
// The current streak stays alive when the latest activity was today or
// yesterday; the longest streak is the best run anywhere in the history.
func Streaks(timestamps []time.Time, now time.Time) (current, longest int) {
	days := distinctDays(timestamps, now.Location())
	if len(days) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	today := truncateDay(now)
	if gap := daysBetween(days[0], today); gap < 0 || gap > 1 {
		return 0, longest
	}
	current = 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		current++
	}
	return current, longest
}

// Summarize builds the full trend summary for a history. Input is sorted by
// completion time before use; the caller's slice is not modified.
func Summarize(history []models.ScoredSession, now time.Time) models.TrendSummary {
	sorted := make([]models.ScoredSession, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metrics.CompletedAt.Before(sorted[j].Metrics.CompletedAt)
	})

	scores := Scores(sorted)
	stamps := make([]time.Time, len(sorted))
	for i, s := range sorted {
		stamps[i] = s.Metrics.CompletedAt
	}

	current, longest := Streaks(stamps, now)
	return models.TrendSummary{
		ImprovementPercent: ImprovementPercent(scores),
		VelocityPerWeek:    VelocityPerWeek(sorted),
		CurrentStreakDays:  current,
		LongestStreakDays:  longest,
		SessionCount:       len(sorted),
		AverageScore:       mean(scores),
	}
}

// Scores extracts overall scores in history order.
func Scores(history []models.ScoredSession) []float64 {
	out := make([]float64, len(history))
	for i, s := range history {
		out[i] = float64(s.Score.OverallScore)
	}
	return out
}

// distinctDays returns unique calendar days, most recent first.
func distinctDays(timestamps []time.Time, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool, len(timestamps))
	var out []time.Time
	for _, ts := range timestamps {
		if ts.IsZero() {
			continue
		}
		d := truncateDay(ts.In(loc))
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, robust to DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / day)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return finite(sum / float64(len(values)))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
