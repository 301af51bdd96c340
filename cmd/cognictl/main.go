/*
Package main is the entry point for cognictl, an offline companion to the
cognitrain server.

Usage:

	cognictl score [file]                score SessionMetrics JSON
	cognictl advise --level N [score...]  recommend the next difficulty level

Both commands honor --tuning, the same TOML file the server reads.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/cognitrain/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cognictl",
		Short:         "Score training sessions and recommend difficulty offline",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(cli.TuningFlag, os.Getenv("TUNING_PATH"), "TOML file overriding scoring and difficulty defaults")

	rootCmd.AddCommand(cli.NewScoreCmd())
	rootCmd.AddCommand(cli.NewAdviseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
