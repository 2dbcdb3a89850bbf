// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish converts an article into a remote knowledge-base document.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/luckysolanki/dailicle/internal/httputil"
	"github.com/luckysolanki/dailicle/pkg/types"
)

// Client creates one document per call and returns its stable reference.
type Client interface {
	Publish(ctx context.Context, payload *types.ArticlePayload) (string, error)
}

// HTTPClient implements Client against a document-publishing HTTP service.
// The service accepts a JSON document and answers with a URL-like reference.
type HTTPClient struct {
	cfg    types.PublishConfig
	client *http.Client
}

// NewHTTPClient builds a publishing client from configuration. The timeout
// bounds each request; the client never blocks indefinitely.
func NewHTTPClient(cfg types.PublishConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("publish base URL is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// documentRequest is the wire shape the publishing service accepts.
type documentRequest struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Collection  string   `json:"collection,omitempty"`
	ContentHTML string   `json:"content_html"`
}

type documentResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// Publish renders the payload to HTML and creates a document. Rate-limited
// responses are retried internally with backoff; that policy is invisible to
// the orchestrator.
func (c *HTTPClient) Publish(ctx context.Context, payload *types.ArticlePayload) (string, error) {
	html, err := renderHTML(payload)
	if err != nil {
		return "", fmt.Errorf("rendering article: %w", err)
	}

	body, err := json.Marshal(documentRequest{
		Title:       payload.Title,
		Summary:     payload.Summary,
		Category:    payload.Category,
		Tags:        payload.Tags,
		Collection:  c.cfg.Collection,
		ContentHTML: html,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling document: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/documents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("publishing request: %w", err)
	}
	defer resp.Body.Close()

	var doc documentResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("parsing publish response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := doc.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("publish service HTTP %d: %s", resp.StatusCode, msg)
	}
	if doc.URL == "" {
		return "", fmt.Errorf("publish service returned no document URL")
	}
	return doc.URL, nil
}

// renderHTML converts the article body plus its reference lists to HTML.
func renderHTML(payload *types.ArticlePayload) (string, error) {
	md := payload.Markdown()

	if len(payload.Resources) > 0 {
		var b strings.Builder
		b.WriteString(md)
		videos, readings := splitResources(payload.Resources)
		if len(videos) > 0 {
			b.WriteString("\n\n## Watch\n")
			writeResourceList(&b, videos)
		}
		if len(readings) > 0 {
			b.WriteString("\n\n## Go Deeper\n")
			writeResourceList(&b, readings)
		}
		md = b.String()
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func splitResources(resources []types.Resource) (videos, readings []types.Resource) {
	for _, r := range resources {
		if r.Kind == types.ResourceVideo {
			videos = append(videos, r)
		} else {
			readings = append(readings, r)
		}
	}
	return videos, readings
}

func writeResourceList(b *strings.Builder, resources []types.Resource) {
	for _, r := range resources {
		fmt.Fprintf(b, "\n- [%s](%s)", r.Title, r.URL)
		if r.Note != "" {
			fmt.Fprintf(b, " (%s)", r.Note)
		}
	}
}
