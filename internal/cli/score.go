package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/scoring"
)

// NewScoreCmd creates the 'score' command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score session metrics read from a JSON file or stdin",
		Long: `Reads one SessionMetrics object, or an array of them, and prints the
score breakdown for each. Use "-" or omit the file to read stdin.`,
		Example: `  cognictl score session.json
  echo '{"game_type":"memory-match","difficulty_level":2,"total_moves":20,"correct_matches":18,"error_count":2,"elapsed_seconds":50}' | cognictl score`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tuning, _ := cmd.Flags().GetString(TuningFlag)
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runScore(cmd.InOrStdin(), cmd.OutOrStdout(), path, tuning)
		},
	}
	return cmd
}

func runScore(stdin io.Reader, out io.Writer, path, tuningPath string) error {
	scoringCfg, _, err := loadTuning(tuningPath)
	if err != nil {
		return err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read metrics: %w", err)
	}

	metrics, single, err := parseMetrics(data)
	if err != nil {
		return err
	}

	calc := scoring.NewCalculator(scoringCfg)
	scored := make([]models.ScoredSession, len(metrics))
	for i, m := range metrics {
		scored[i] = models.ScoredSession{Metrics: m, Score: calc.Score(m)}
	}
	if single {
		return printJSON(out, scored[0])
	}
	return printJSON(out, scored)
}

// parseMetrics accepts a single object or an array.
func parseMetrics(data []byte) (metrics []models.SessionMetrics, single bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false, fmt.Errorf("no metrics given")
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &metrics); err != nil {
			return nil, false, fmt.Errorf("parse metrics: %w", err)
		}
		if len(metrics) == 0 {
			return nil, false, fmt.Errorf("no metrics given")
		}
		return metrics, false, nil
	}
	var m models.SessionMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("parse metrics: %w", err)
	}
	return []models.SessionMetrics{m}, true, nil
}
