// Package encouragement attaches display text to difficulty decisions.
package encouragement

import (
	"context"

	"github.com/vytor/cognitrain/internal/models"
)

// Annotator produces a short message for a decision. Implementations may be
// slow or unavailable; callers treat an error as "no message".
type Annotator interface {
	Annotate(ctx context.Context, gameType string, d models.DifficultyDecision) (string, error)
}

var messages = map[models.ReasonCode]string{
	models.ReasonInsufficientData:  "Play a few more rounds so we can tune the challenge to you.",
	models.ReasonStrongPerformance: "Great work! You're ready for a tougher challenge.",
	models.ReasonWeakPerformance:   "Let's ease off a little and build your confidence back up.",
	models.ReasonSteadyPerformance: "Nice and steady. Keep practicing at this level.",
}

// Static looks messages up by reason code.
type Static struct{}

func (Static) Annotate(_ context.Context, _ string, d models.DifficultyDecision) (string, error) {
	return Message(d.ReasonCode), nil
}

// Message returns the stock text for a reason code, or "" for unknown codes.
func Message(code models.ReasonCode) string {
	return messages[code]
}
