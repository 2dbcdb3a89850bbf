// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload ArticlePayload
		wantErr bool
	}{
		{
			name: "valid",
			payload: ArticlePayload{
				Title:    "The Slow Architecture of Humility",
				Sections: []Section{{Content: "Some prose."}},
			},
		},
		{
			name: "missing title",
			payload: ArticlePayload{
				Sections: []Section{{Content: "Some prose."}},
			},
			wantErr: true,
		},
		{
			name: "whitespace title",
			payload: ArticlePayload{
				Title:    "   ",
				Sections: []Section{{Content: "Some prose."}},
			},
			wantErr: true,
		},
		{
			name:    "no sections",
			payload: ArticlePayload{Title: "A Title"},
			wantErr: true,
		},
		{
			name: "sections all empty",
			payload: ArticlePayload{
				Title:    "A Title",
				Sections: []Section{{Heading: "One", Content: "  "}, {Content: ""}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMarkdown(t *testing.T) {
	p := ArticlePayload{
		Title: "Feedback Loops",
		Sections: []Section{
			{Content: "An opening scene."},
			{Heading: "Compounding", Content: "Small effects accumulate."},
		},
	}

	md := p.Markdown()
	if !strings.HasPrefix(md, "An opening scene.") {
		t.Errorf("body should start with the untitled section, got %q", md)
	}
	if !strings.Contains(md, "## Compounding") {
		t.Errorf("headed section missing, got %q", md)
	}
}

func TestReadingTime(t *testing.T) {
	short := ArticlePayload{Sections: []Section{{Content: "only a few words here"}}}
	if got := short.ReadingTimeMinutes(); got != 1 {
		t.Errorf("short article reading time = %d, want 1", got)
	}

	long := ArticlePayload{Sections: []Section{{Content: strings.Repeat("word ", 1000)}}}
	if got := long.WordCount(); got != 1000 {
		t.Errorf("WordCount() = %d, want 1000", got)
	}
	if got := long.ReadingTimeMinutes(); got != 5 {
		t.Errorf("ReadingTimeMinutes() = %d, want 5", got)
	}
}
