package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vytor/cognitrain/internal/difficulty"
	"github.com/vytor/cognitrain/internal/models"
)

type adviceOutput struct {
	Decision       models.DifficultyDecision `json:"decision"`
	ReadyToAdvance bool                      `json:"ready_to_advance"`
}

// NewAdviseCmd creates the 'advise' command.
func NewAdviseCmd() *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:   "advise [score...]",
		Short: "Recommend a difficulty level from recent overall scores",
		Long:  `Scores are overall session scores (0-100), oldest first.`,
		Example: `  cognictl advise --level 3 80 85 90
  cognictl advise --level 2 --tuning tuning.toml 35 30 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tuning, _ := cmd.Flags().GetString(TuningFlag)
			return runAdvise(cmd.OutOrStdout(), level, args, tuning)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 1, "Current difficulty level")

	return cmd
}

func runAdvise(out io.Writer, level int, args []string, tuningPath string) error {
	_, difficultyCfg, err := loadTuning(tuningPath)
	if err != nil {
		return err
	}

	recent := make([]models.ScoreBreakdown, len(args))
	for i, arg := range args {
		score, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", arg, err)
		}
		recent[i] = models.ScoreBreakdown{OverallScore: score}
	}

	advisor := difficulty.NewAdvisor(difficultyCfg)
	return printJSON(out, adviceOutput{
		Decision:       advisor.Advise(level, recent),
		ReadyToAdvance: advisor.IsReadyToAdvance(level, recent),
	})
}
