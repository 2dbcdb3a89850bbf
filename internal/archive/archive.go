// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists full article payloads for later retrieval.
// It is logically separate from topic history: an archive-write failure
// never blocks the history write, and the two stores share no schema.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// ErrNotFound is returned when no archived article matches a reference.
var ErrNotFound = errors.New("archived article not found")

// Store manages the article archive SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive database at cfg.DBPath.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("archive db path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		ref TEXT PRIMARY KEY,
		record_id TEXT NOT NULL,
		title TEXT NOT NULL,
		payload TEXT NOT NULL,
		archived_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_articles_record ON articles(record_id)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Save persists the full payload keyed to the topic record and returns the
// archive reference. The payload is stored as a JSON document.
func (s *Store) Save(ctx context.Context, recordID string, payload *types.ArticlePayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling payload: %w", err)
	}

	ref := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO articles (ref, record_id, title, payload, archived_at) VALUES (?, ?, ?, ?, ?)`,
		ref, recordID, payload.Title, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("inserting article: %w", err)
	}
	return ref, nil
}

// Get retrieves an archived payload by its reference.
func (s *Store) Get(ctx context.Context, ref string) (*types.ArticlePayload, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM articles WHERE ref = ?`, ref).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying article %s: %w", ref, err)
	}

	var payload types.ArticlePayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, fmt.Errorf("parsing article %s: %w", ref, err)
	}
	return &payload, nil
}

// entry pairs a reference with its payload for exports.
type entry struct {
	Ref        string               `yaml:"ref"`
	RecordID   string               `yaml:"record_id"`
	ArchivedAt string               `yaml:"archived_at"`
	Article    types.ArticlePayload `yaml:"article"`
}

// ExportYAML writes all archived articles to w as YAML, most recent first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ref, record_id, payload, archived_at FROM articles ORDER BY archived_at DESC`)
	if err != nil {
		return fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var entries []entry
	for rows.Next() {
		var e entry
		var data string
		if err := rows.Scan(&e.Ref, &e.RecordID, &data, &e.ArchivedAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(data), &e.Article); err != nil {
			return fmt.Errorf("parsing article %s: %w", e.Ref, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling archive: %w", err)
	}
	_, err = w.Write(data)
	return err
}
