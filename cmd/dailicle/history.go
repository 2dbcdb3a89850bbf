// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/luckysolanki/dailicle/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the topic history (list, stats, export)",
	Long: `History manages the local topic record store that drives topic
repeat-avoidance. Use subcommands to list recent topics, summarize
category coverage, or export the full history.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent topics, most recent first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetDuration("window")

	store, err := history.NewStore(pipelineConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.RecentTopics(context.Background(), window)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No topics recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-50s  %-18s  %6s\n", "Date", "Title", "Category", "Words")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 92))
	for _, rec := range records {
		title := rec.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-50s  %-18s  %6d\n",
			rec.GeneratedAt.Format("2006-01-02"), title, rec.Category, rec.WordCount)
	}
	fmt.Fprintf(os.Stdout, "\n%d topics\n", len(records))
	return nil
}

// --- stats subcommand ---

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize topic counts per category",
	RunE:  runHistoryStats,
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(pipelineConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.ReadStats(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(os.Stdout, "Total topics: %d\n", stats.Total)
	for category, count := range stats.Categories {
		fmt.Fprintf(os.Stdout, "  %-20s %d\n", category, count)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full topic history as YAML",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(pipelineConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ExportYAML(context.Background(), os.Stdout)
}

func init() {
	historyListCmd.Flags().Duration("window", 90*24*time.Hour, "lookback window (0 = all)")
	historyStatsCmd.Flags().Bool("json", false, "output stats as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
