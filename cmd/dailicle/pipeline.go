// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/luckysolanki/dailicle/internal/archive"
	"github.com/luckysolanki/dailicle/internal/deliver"
	"github.com/luckysolanki/dailicle/internal/generate"
	"github.com/luckysolanki/dailicle/internal/history"
	"github.com/luckysolanki/dailicle/internal/orchestrator"
	"github.com/luckysolanki/dailicle/internal/publish"
	"github.com/luckysolanki/dailicle/pkg/types"
)

// buildRunner wires every pipeline stage from configuration. The returned
// closer releases both SQLite stores.
func buildRunner(cfg types.PipelineConfig, out io.Writer) (*orchestrator.Runner, func(), error) {
	gen, err := generate.NewOpenAIClient(cfg.Generator)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring generator: %w", err)
	}
	pub, err := publish.NewHTTPClient(cfg.Publish)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring publisher: %w", err)
	}
	del, err := deliver.NewSMTPClient(cfg.Delivery)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring delivery: %w", err)
	}
	hist, err := history.NewStore(cfg.History)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history store: %w", err)
	}
	arch, err := archive.NewStore(cfg.Archive)
	if err != nil {
		hist.Close()
		return nil, nil, fmt.Errorf("opening archive store: %w", err)
	}

	runner := orchestrator.NewRunner(gen, pub, del, arch, hist,
		cfg.Generator, cfg.History, out)
	closer := func() {
		arch.Close()
		hist.Close()
	}
	return runner, closer, nil
}

// printOutcome renders a run summary to out.
func printOutcome(out io.Writer, outcome *types.RunOutcome) {
	fmt.Fprintf(out, "\nStatus: %s (%.1fs)\n", outcome.Status, outcome.Duration.Seconds())
	if outcome.Title != "" {
		fmt.Fprintf(out, "Title: %s\n", outcome.Title)
	}
	if outcome.DocumentRef != "" {
		fmt.Fprintf(out, "Document: %s\n", outcome.DocumentRef)
	}
	if outcome.ArchiveRef != "" {
		fmt.Fprintf(out, "Archive: %s\n", outcome.ArchiveRef)
	}
	fmt.Fprintf(out, "Email sent: %t\n", outcome.EmailSent)
	for _, e := range outcome.Errors {
		fmt.Fprintf(out, "Error [%s]: %s\n", e.Stage, e.Message)
	}
}
