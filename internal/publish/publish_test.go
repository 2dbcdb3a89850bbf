// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/luckysolanki/dailicle/internal/httputil"
	"github.com/luckysolanki/dailicle/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func samplePayload() *types.ArticlePayload {
	return &types.ArticlePayload{
		Title:    "The Quiet Power of Defaults",
		Summary:  "Why most decisions are made before anyone decides.",
		Category: "behavioral-economics",
		Tags:     []string{"defaults", "choice-architecture"},
		Sections: []types.Section{
			{Content: "Nobody chose the settings you live with."},
			{Heading: "Opt-Out Nations", Content: "Organ donation rates track form design."},
		},
		Resources: []types.Resource{
			{Kind: types.ResourceVideo, Title: "Nudge Explained", URL: "https://example.org/v"},
			{Kind: types.ResourceReading, Title: "Nudge", URL: "https://example.org/b", Note: "the original book"},
		},
	}
}

func newClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(types.PublishConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "dailicle-test"},
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Collection: "daily",
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPublishSuccess(t *testing.T) {
	var got documentRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(documentResponse{URL: "https://kb.example.org/doc/abc"})
	}))
	defer ts.Close()

	ref, err := newClient(t, ts.URL).Publish(context.Background(), samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	if ref != "https://kb.example.org/doc/abc" {
		t.Errorf("ref = %q", ref)
	}
	if got.Title != "The Quiet Power of Defaults" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Collection != "daily" {
		t.Errorf("collection = %q", got.Collection)
	}
	if !strings.Contains(got.ContentHTML, "<h2>Opt-Out Nations</h2>") {
		t.Errorf("content missing section heading:\n%s", got.ContentHTML)
	}
	if !strings.Contains(got.ContentHTML, "Go Deeper") || !strings.Contains(got.ContentHTML, "Watch") {
		t.Errorf("content missing resource lists:\n%s", got.ContentHTML)
	}
}

func TestPublishRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(documentResponse{URL: "https://kb.example.org/doc/x"})
	}))
	defer ts.Close()

	ref, err := newClient(t, ts.URL).Publish(context.Background(), samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	if ref == "" {
		t.Fatal("empty ref after retry")
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestPublishServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(documentResponse{Error: "upstream down"})
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Publish(context.Background(), samplePayload())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("err = %v", err)
	}
}

func TestPublishMissingURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(documentResponse{})
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Publish(context.Background(), samplePayload())
	if err == nil || !strings.Contains(err.Error(), "no document URL") {
		t.Errorf("err = %v", err)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(types.PublishConfig{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
