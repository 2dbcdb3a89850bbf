// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrator sequences one article pipeline run: derive exclusions
// from history, generate, then publish, archive, deliver, and record.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/luckysolanki/dailicle/internal/history"
	"github.com/luckysolanki/dailicle/pkg/types"
)

// backoffBase is the wait before the first generation retry; each further
// retry doubles it. Tests override this to avoid real sleeps.
var backoffBase = 5 * time.Second

// Generator produces one article from a generation request.
type Generator interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.ArticlePayload, error)
}

// Publisher creates one document and returns its reference.
type Publisher interface {
	Publish(ctx context.Context, payload *types.ArticlePayload) (string, error)
}

// Deliverer sends one article by email. docRef may be empty.
type Deliverer interface {
	Deliver(ctx context.Context, payload *types.ArticlePayload, docRef string) error
}

// Archiver persists one full payload and returns its reference.
type Archiver interface {
	Save(ctx context.Context, recordID string, payload *types.ArticlePayload) (string, error)
}

// History answers exclusion queries and records completed topics.
type History interface {
	RecentTopics(ctx context.Context, window time.Duration) ([]types.TopicRecord, error)
	AllTitles(ctx context.Context) ([]string, error)
	Record(ctx context.Context, rec types.TopicRecord) error
}

// retryable is implemented by generation errors that are worth retrying
// (rate limits and timeouts). Checked with errors.As so the orchestrator
// stays decoupled from client error types.
type retryable interface {
	Retryable() bool
}

// Runner drives the pipeline. At most one run is active at a time; a second
// trigger is rejected immediately with a busy outcome.
type Runner struct {
	generator Generator
	publisher Publisher
	deliverer Deliverer
	archiver  Archiver
	history   History

	genCfg  types.GeneratorConfig
	histCfg types.HistoryConfig

	out io.Writer

	busy atomic.Bool

	mu   sync.Mutex
	last *types.RunOutcome
}

// NewRunner wires the pipeline stages together. out receives progress lines
// and must not be nil (use io.Discard to silence).
func NewRunner(gen Generator, pub Publisher, del Deliverer, arch Archiver, hist History,
	genCfg types.GeneratorConfig, histCfg types.HistoryConfig, out io.Writer) *Runner {
	return &Runner{
		generator: gen,
		publisher: pub,
		deliverer: del,
		archiver:  arch,
		history:   hist,
		genCfg:    genCfg,
		histCfg:   histCfg,
		out:       out,
	}
}

// LastOutcome returns the outcome of the most recently finished run, or nil
// when no run has completed yet. Busy rejections are not recorded.
func (r *Runner) LastOutcome() *types.RunOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// RunOnce executes one full pipeline run. Generation failure is fatal to the
// run; publish, archive, and delivery failures degrade the outcome to partial
// but never abort it. The topic record is written whenever generation
// succeeded, regardless of downstream failures.
func (r *Runner) RunOnce(ctx context.Context, seed string) *types.RunOutcome {
	if !r.busy.CompareAndSwap(false, true) {
		return &types.RunOutcome{Status: types.StatusBusy, StartedAt: time.Now().UTC()}
	}
	defer r.busy.Store(false)

	outcome := &types.RunOutcome{StartedAt: time.Now().UTC()}
	defer func() {
		outcome.Duration = time.Since(outcome.StartedAt)
		r.mu.Lock()
		r.last = outcome
		r.mu.Unlock()
	}()

	req := r.buildRequest(ctx, seed, outcome)

	fmt.Fprintf(r.out, "generating article (excluding %d titles, %d categories)\n",
		len(req.ExcludedTitles), len(req.ExcludedCategories))
	payload, err := r.generateWithRetry(ctx, req)
	if err != nil {
		outcome.AddError(types.StageGenerate, err)
		outcome.Status = types.StatusFailed
		fmt.Fprintf(r.out, "generation failed: %v\n", err)
		return outcome
	}
	outcome.Title = payload.Title
	fmt.Fprintf(r.out, "generated %q (%d words)\n", payload.Title, payload.WordCount())

	recordID := uuid.NewString()

	// Publish and archive are independent of each other; run them together
	// and collect both results before deciding on delivery.
	var wg sync.WaitGroup
	var docRef, archiveRef string
	var pubErr, archErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		docRef, pubErr = r.publisher.Publish(ctx, payload)
	}()
	go func() {
		defer wg.Done()
		archiveRef, archErr = r.archiver.Save(ctx, recordID, payload)
	}()
	wg.Wait()

	if pubErr != nil {
		outcome.AddError(types.StagePublish, pubErr)
		fmt.Fprintf(r.out, "publish failed: %v\n", pubErr)
	} else {
		outcome.DocumentRef = docRef
		fmt.Fprintf(r.out, "published %s\n", docRef)
	}
	if archErr != nil {
		outcome.AddError(types.StageArchive, archErr)
		fmt.Fprintf(r.out, "archive failed: %v\n", archErr)
	} else {
		outcome.ArchiveRef = archiveRef
	}

	if err := r.deliverer.Deliver(ctx, payload, outcome.DocumentRef); err != nil {
		outcome.AddError(types.StageDeliver, err)
		fmt.Fprintf(r.out, "delivery failed: %v\n", err)
	} else {
		outcome.EmailSent = true
		fmt.Fprintln(r.out, "email sent")
	}

	rec := types.TopicRecord{
		ID:          recordID,
		Title:       payload.Title,
		Category:    payload.Category,
		Tags:        payload.Tags,
		WordCount:   payload.WordCount(),
		DocumentRef: outcome.DocumentRef,
		ArchiveRef:  outcome.ArchiveRef,
		GeneratedAt: outcome.StartedAt,
	}
	if err := r.history.Record(ctx, rec); err != nil {
		outcome.AddError(types.StageRecord, err)
		fmt.Fprintf(r.out, "recording topic failed: %v\n", err)
	}

	if pubErr == nil && outcome.EmailSent {
		outcome.Status = types.StatusSuccess
	} else {
		outcome.Status = types.StatusPartial
	}
	return outcome
}

// buildRequest derives exclusion lists from history. History failures are
// recorded but never fatal; a first run proceeds with empty exclusions.
func (r *Runner) buildRequest(ctx context.Context, seed string, outcome *types.RunOutcome) types.GenerationRequest {
	req := types.GenerationRequest{Seed: seed}

	titleWindow := r.histCfg.TitleLookback
	if titleWindow <= 0 {
		titleWindow = 30 * 24 * time.Hour
	}
	categoryWindow := r.histCfg.CategoryLookback
	if categoryWindow <= 0 {
		categoryWindow = 7 * 24 * time.Hour
	}
	maxTitles := r.histCfg.MaxExcludedTitles
	if maxTitles <= 0 {
		maxTitles = 10
	}
	maxTags := r.histCfg.MaxExcludedTags
	if maxTags <= 0 {
		maxTags = 15
	}

	recent, err := r.history.RecentTopics(ctx, titleWindow)
	if err != nil {
		outcome.AddError(types.StageHistory, err)
		fmt.Fprintf(r.out, "history lookup failed, continuing without exclusions: %v\n", err)
		return req
	}

	seen := make(map[string]bool)
	for _, rec := range recent {
		if len(req.ExcludedTitles) >= maxTitles {
			break
		}
		key := strings.ToLower(strings.TrimSpace(rec.Title))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		req.ExcludedTitles = append(req.ExcludedTitles, rec.Title)
	}

	// Every past title rides along for exact-repeat avoidance, beyond the
	// capped recent list.
	all, err := r.history.AllTitles(ctx)
	if err != nil {
		outcome.AddError(types.StageHistory, err)
		fmt.Fprintf(r.out, "title lookup failed, continuing with recent titles only: %v\n", err)
	} else {
		for _, title := range all {
			key := strings.ToLower(strings.TrimSpace(title))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			req.ExcludedTitles = append(req.ExcludedTitles, title)
		}
	}

	req.ExcludedCategories = history.CategoriesWithin(recent, categoryWindow, time.Now().UTC())

	tagSeen := make(map[string]bool)
	for _, rec := range recent {
		for _, tag := range rec.Tags {
			if len(req.ExcludedTags) >= maxTags {
				return req
			}
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" || tagSeen[key] {
				continue
			}
			tagSeen[key] = true
			req.ExcludedTags = append(req.ExcludedTags, tag)
		}
	}
	return req
}

// generateWithRetry calls the generator, retrying only errors that report
// themselves retryable. maxRetries bounds the retries, not the total calls.
func (r *Runner) generateWithRetry(ctx context.Context, req types.GenerationRequest) (*types.ArticlePayload, error) {
	maxRetries := r.genCfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}

	backoff := backoffBase
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			fmt.Fprintf(r.out, "retrying generation (attempt %d of %d)\n", attempt+1, maxRetries+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		payload, err := r.generator.Generate(ctx, req)
		if err == nil {
			if verr := payload.Validate(); verr != nil {
				return nil, fmt.Errorf("generated article is unusable: %w", verr)
			}
			return payload, nil
		}
		lastErr = err

		var re retryable
		if !errors.As(err, &re) || !re.Retryable() {
			return nil, err
		}
	}
	return nil, lastErr
}
