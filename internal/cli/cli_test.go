package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/cognitrain/internal/models"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "cognictl", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String(TuningFlag, "", "")
	root.AddCommand(NewScoreCmd(), NewAdviseCmd())
	return root
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const sampleSession = `{"game_type":"memory-match","difficulty_level":1,"total_moves":20,"correct_matches":18,"error_count":2,"elapsed_seconds":45}`

func TestScore_Stdin(t *testing.T) {
	out, err := execute(t, sampleSession, "score")
	require.NoError(t, err)

	var scored models.ScoredSession
	require.NoError(t, json.Unmarshal([]byte(out), &scored))
	assert.Equal(t, 94, scored.Score.OverallScore)
	assert.Equal(t, "memory-match", scored.Metrics.GameType)
}

func TestScore_FileWithArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("["+sampleSession+","+sampleSession+"]"), 0o644))

	out, err := execute(t, "", "score", path)
	require.NoError(t, err)

	var scored []models.ScoredSession
	require.NoError(t, json.Unmarshal([]byte(out), &scored))
	assert.Len(t, scored, 2)
}

func TestScore_Errors(t *testing.T) {
	_, err := execute(t, "", "score")
	assert.ErrorContains(t, err, "no metrics")

	_, err = execute(t, "{", "score")
	assert.ErrorContains(t, err, "parse metrics")

	_, err = execute(t, "", "score", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read metrics")
}

func TestScore_Tuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scoring]\nmax_difficulty_bonus = 0.0\n"), 0o644))

	out, err := execute(t, sampleSession, "score", "--tuning", path)
	require.NoError(t, err)

	var scored models.ScoredSession
	require.NoError(t, json.Unmarshal([]byte(out), &scored))
	assert.Zero(t, scored.Score.DifficultyBonus)
	assert.Equal(t, 90, scored.Score.OverallScore)
}

func TestAdvise(t *testing.T) {
	out, err := execute(t, "", "advise", "--level", "3", "80", "85", "90")
	require.NoError(t, err)

	var advice adviceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &advice))
	assert.Equal(t, models.DirectionIncrease, advice.Decision.Direction)
	assert.Equal(t, 4, advice.Decision.RecommendedLevel)
	assert.Equal(t, models.ReasonStrongPerformance, advice.Decision.ReasonCode)
}

func TestAdvise_NoScores(t *testing.T) {
	out, err := execute(t, "", "advise", "-l", "2")
	require.NoError(t, err)

	var advice adviceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &advice))
	assert.Equal(t, models.ReasonInsufficientData, advice.Decision.ReasonCode)
	assert.Equal(t, 2, advice.Decision.RecommendedLevel)
}

func TestAdvise_BadScore(t *testing.T) {
	_, err := execute(t, "", "advise", "ninety")
	assert.ErrorContains(t, err, "invalid score")
}
