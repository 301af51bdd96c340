package api

import (
	"context"

	"github.com/vytor/cognitrain/internal/difficulty"
	"github.com/vytor/cognitrain/internal/scoring"
	"github.com/vytor/cognitrain/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB              Pinger
	Calculator      *scoring.Calculator
	Advisor         *difficulty.Advisor
	ProfileService  services.ProfileService
	SessionService  services.SessionService
	ProgressService services.ProgressService
}
