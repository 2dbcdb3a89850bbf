// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists topic records and answers the exclusion-window
// queries the orchestrator uses to keep topics varied.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// Store manages the topic history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the topic history database at cfg.DBPath,
// creating the schema and parent directory if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("history db path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			tags TEXT,
			word_count INTEGER,
			document_ref TEXT,
			archive_ref TEXT,
			generated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_topics_generated_at ON topics(generated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_topics_category ON topics(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a topic record. Duplicate titles are tolerated; exclusion
// matching is advisory only.
func (s *Store) Record(ctx context.Context, rec types.TopicRecord) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("topic record has no title")
	}
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now().UTC()
	}

	tagsJSON, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO topics (id, title, category, tags, word_count, document_ref, archive_ref, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Category, string(tagsJSON), rec.WordCount,
		rec.DocumentRef, rec.ArchiveRef, rec.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting topic: %w", err)
	}
	return nil
}

// RecentTopics returns the records generated within the window, most recent
// first, so callers can apply lookback cutoffs from the front of the slice.
// A zero window returns all records.
func (s *Store) RecentTopics(ctx context.Context, window time.Duration) ([]types.TopicRecord, error) {
	query := `SELECT id, title, category, tags, word_count, document_ref, archive_ref, generated_at
		FROM topics`
	var args []any
	if window > 0 {
		cutoff := time.Now().UTC().Add(-window)
		query += ` WHERE generated_at >= ?`
		args = append(args, cutoff.Format(time.RFC3339Nano))
	}
	query += ` ORDER BY generated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	var records []types.TopicRecord
	for rows.Next() {
		rec, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AllTitles returns every recorded topic title, most recent first. Used for
// exact-repeat avoidance across the full history.
func (s *Store) AllTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title FROM topics ORDER BY generated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// Stats summarizes the history: total record count plus per-category counts.
type Stats struct {
	Total      int            `json:"total" yaml:"total"`
	Categories map[string]int `json:"categories" yaml:"categories"`
}

// ReadStats computes history statistics.
func (s *Store) ReadStats(ctx context.Context) (Stats, error) {
	stats := Stats{Categories: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM topics GROUP BY category`)
	if err != nil {
		return stats, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return stats, err
		}
		stats.Categories[category] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

// ExportYAML writes the full topic history to w as YAML, most recent first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	records, err := s.RecentTopics(ctx, 0)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// CategoriesWithin returns the distinct categories of records generated
// within the window, sorted for stable output.
func CategoriesWithin(records []types.TopicRecord, window time.Duration, now time.Time) []string {
	cutoff := now.Add(-window)
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.GeneratedAt.Before(cutoff) {
			// Records are recency-ordered; everything after is older.
			break
		}
		if rec.Category != "" {
			seen[rec.Category] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

func scanTopic(rows *sql.Rows) (types.TopicRecord, error) {
	var rec types.TopicRecord
	var tagsJSON sql.NullString
	var docRef, archRef sql.NullString
	var generatedAt string

	if err := rows.Scan(&rec.ID, &rec.Title, &rec.Category, &tagsJSON,
		&rec.WordCount, &docRef, &archRef, &generatedAt); err != nil {
		return rec, fmt.Errorf("scanning topic: %w", err)
	}

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &rec.Tags); err != nil {
			return rec, fmt.Errorf("parsing tags for %s: %w", rec.ID, err)
		}
	}
	rec.DocumentRef = docRef.String
	rec.ArchiveRef = archRef.String

	t, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return rec, fmt.Errorf("parsing timestamp for %s: %w", rec.ID, err)
	}
	rec.GeneratedAt = t
	return rec, nil
}
