// Package cli implements the cognictl subcommands.
package cli

import (
	"encoding/json"
	"io"

	"github.com/vytor/cognitrain/internal/config"
	"github.com/vytor/cognitrain/internal/difficulty"
	"github.com/vytor/cognitrain/internal/scoring"
)

// TuningFlag is the name of the persistent flag pointing at a tuning file.
const TuningFlag = "tuning"

func loadTuning(path string) (scoring.Config, difficulty.Config, error) {
	t, err := config.LoadTuning(path)
	if err != nil {
		return scoring.Config{}, difficulty.Config{}, err
	}
	return t.Apply()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
