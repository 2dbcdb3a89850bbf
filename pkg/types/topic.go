// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// TopicRecord summarizes one generated article for future topic-avoidance
// lookups. Records are immutable once written; retention is an external
// concern. DocumentRef and ArchiveRef are weak references into the
// publishing and archive systems.
type TopicRecord struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Category    string    `json:"category" yaml:"category"`
	Tags        []string  `json:"tags" yaml:"tags"`
	WordCount   int       `json:"word_count" yaml:"word_count"`
	DocumentRef string    `json:"document_ref,omitempty" yaml:"document_ref,omitempty"`
	ArchiveRef  string    `json:"archive_ref,omitempty" yaml:"archive_ref,omitempty"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// TitleMatches reports whether the record's title equals other,
// case-insensitively. Exclusion matching is advisory, not a uniqueness
// constraint.
func (r TopicRecord) TitleMatches(other string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Title), strings.TrimSpace(other))
}

// GenerationRequest is the input to one generation call: an optional caller
// seed plus exclusion lists derived from recent history. Exclusions are
// guidance for the model, not a constraint it is mechanically prevented from
// violating.
type GenerationRequest struct {
	Seed               string
	ExcludedTitles     []string
	ExcludedCategories []string
	ExcludedTags       []string
}
