// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across pipeline stages.
package types

import (
	"fmt"
	"strings"
)

// Section is one (heading, content) pair of the article body. The heading
// may be empty for free-flowing prose that precedes the first heading.
type Section struct {
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Content string `json:"content" yaml:"content"`
}

// ResourceKind distinguishes the reference list entries the model appends.
type ResourceKind string

const (
	ResourceVideo   ResourceKind = "video"
	ResourceReading ResourceKind = "reading"
)

// Resource is one entry of the article's reference list.
type Resource struct {
	Kind  ResourceKind `json:"kind" yaml:"kind"`
	Title string       `json:"title" yaml:"title"`
	URL   string       `json:"url" yaml:"url"`
	Note  string       `json:"note,omitempty" yaml:"note,omitempty"`
}

// ArticlePayload is the structured article produced by one generation call.
// The orchestrator owns it for the remainder of the run; publishing, delivery,
// and archive collaborators receive it by reference and must not mutate it.
type ArticlePayload struct {
	Title     string     `json:"title" yaml:"title"`
	Summary   string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Category  string     `json:"category" yaml:"category"`
	Tags      []string   `json:"tags" yaml:"tags"`
	Sections  []Section  `json:"sections" yaml:"sections"`
	Resources []Resource `json:"resources,omitempty" yaml:"resources,omitempty"`

	// Metadata carries derived descriptive values such as word_count and
	// reading_time_minutes.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks the minimum structural requirements: a non-empty title and
// at least one section with non-empty content.
func (p *ArticlePayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("article has no title")
	}
	for _, s := range p.Sections {
		if strings.TrimSpace(s.Content) != "" {
			return nil
		}
	}
	return fmt.Errorf("article %q has an empty body", p.Title)
}

// Markdown reassembles the article body as Markdown, one heading per section.
func (p *ArticlePayload) Markdown() string {
	var b strings.Builder
	for i, s := range p.Sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if s.Heading != "" {
			fmt.Fprintf(&b, "## %s\n\n", s.Heading)
		}
		b.WriteString(strings.TrimSpace(s.Content))
	}
	return b.String()
}

// WordCount returns the number of whitespace-separated words in the body.
func (p *ArticlePayload) WordCount() int {
	n := 0
	for _, s := range p.Sections {
		n += len(strings.Fields(s.Content))
	}
	return n
}

// ReadingTimeMinutes estimates reading time at 200 words per minute,
// never less than one minute.
func (p *ArticlePayload) ReadingTimeMinutes() int {
	minutes := p.WordCount() / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
