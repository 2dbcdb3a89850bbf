// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luckysolanki/dailicle/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate, publish, archive, and email one article",
	Long: `Run executes one full pipeline pass: derive topic exclusions from
history, generate an article, then publish it, archive it, and email it.
Generation failure aborts the run; downstream failures degrade it to a
partial result but never abort it.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("seed", "", "optional topic seed to steer generation")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	seed, _ := cmd.Flags().GetString("seed")

	runner, closer, err := buildRunner(pipelineConfig(), os.Stdout)
	if err != nil {
		return err
	}
	defer closer()

	outcome := runner.RunOnce(context.Background(), seed)
	printOutcome(os.Stdout, outcome)

	if outcome.Status == types.StatusFailed {
		return fmt.Errorf("pipeline run failed")
	}
	return nil
}
