// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"strings"
	"testing"

	"github.com/luckysolanki/dailicle/pkg/types"
)

const sampleResponse = `There is a moment, just before you hit send, when the
message stops being yours. You reread it twice. You imagine how it lands.

## The Spotlight That Isn't There

Psychologists call it the spotlight effect: we overestimate how much
attention others pay to us, because we cannot stop paying attention to
ourselves.

## Breaking the Loop

The fix is not confidence. It is arithmetic.

---
METADATA:
Title: The Spotlight That Follows You Home
Category: psychology
Tags: spotlight effect, social anxiety, status
Summary: Nobody is watching as closely as you think.
---

YOUTUBE:
- "The Spotlight Effect" by Veritasium: https://youtube.com/watch?v=abc123 - A crisp demo
- "Why We Overthink" by Kurzgesagt: https://youtube.com/watch?v=def456 - Good visuals

RESOURCES:
- "Mistakes Were Made (But Not by Me)" by Tavris (2007): https://example.org/tavris - On self-justification
- "The Spotlight Effect in Social Judgment" by Gilovich (2000): https://example.org/gilovich - The original study
`

func TestParseFullResponse(t *testing.T) {
	p, err := Parse(sampleResponse)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if p.Title != "The Spotlight That Follows You Home" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Category != "psychology" {
		t.Errorf("category = %q", p.Category)
	}
	if len(p.Tags) != 3 || p.Tags[0] != "spotlight effect" {
		t.Errorf("tags = %v", p.Tags)
	}
	if p.Summary != "Nobody is watching as closely as you think." {
		t.Errorf("summary = %q", p.Summary)
	}

	if len(p.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(p.Sections))
	}
	if p.Sections[0].Heading != "" {
		t.Errorf("first section should be unheaded, got %q", p.Sections[0].Heading)
	}
	if p.Sections[1].Heading != "The Spotlight That Isn't There" {
		t.Errorf("second heading = %q", p.Sections[1].Heading)
	}

	// The trailer must not leak into the body.
	body := p.Markdown()
	for _, marker := range []string{"METADATA", "YOUTUBE", "RESOURCES"} {
		if strings.Contains(body, marker) {
			t.Errorf("body contains trailer marker %s", marker)
		}
	}

	videos := 0
	readings := 0
	for _, r := range p.Resources {
		switch r.Kind {
		case types.ResourceVideo:
			videos++
		case types.ResourceReading:
			readings++
		}
		if r.URL == "" || r.Title == "" {
			t.Errorf("resource missing fields: %+v", r)
		}
	}
	if videos != 2 || readings != 2 {
		t.Errorf("resources = %d videos, %d readings, want 2 and 2", videos, readings)
	}

	if p.Metadata["word_count"] == "" || p.Metadata["reading_time_minutes"] == "" {
		t.Errorf("derived metadata missing: %v", p.Metadata)
	}
}

func TestParseTitleFallbacks(t *testing.T) {
	// No metadata block, but a Title: line in the content.
	p, err := Parse("Title: A Fallback Title\n\nSome body prose long enough to count.")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if p.Title != "A Fallback Title" {
		t.Errorf("title = %q", p.Title)
	}

	// Only an H1 heading.
	p, err = Parse("# Heading Title\n\nSome body prose long enough to count.")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if p.Title != "Heading Title" {
		t.Errorf("title = %q", p.Title)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"no title anywhere", "just some prose with no title markers at all"},
		{"title but empty body", "---\nMETADATA:\nTitle: Only A Title\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.content); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.name)
			}
		})
	}
}

func TestParseBoldMetadata(t *testing.T) {
	content := `Prose body with enough words to pass validation checks.

---
METADATA:
Title: **A Bold Title**
Category: **decision-making**
Tags: **bias, priors**
---
`
	p, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if p.Title != "A Bold Title" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Category != "decision-making" {
		t.Errorf("category = %q", p.Category)
	}
}
