// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP for external schedulers.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// maxRequestBody is the maximum allowed request body size (64 KB).
const maxRequestBody int64 = 64 << 10

// Pipeline is what the server needs from the orchestrator.
type Pipeline interface {
	RunOnce(ctx context.Context, seed string) *types.RunOutcome
	LastOutcome() *types.RunOutcome
}

// Server holds the HTTP handlers and dependencies.
type Server struct {
	pipeline Pipeline
	mux      *http.ServeMux
}

// New creates a new trigger server.
func New(p Pipeline) *Server {
	srv := &Server{pipeline: p, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

// Handler returns the root http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return limitBody(jsonContent(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/run", s.handleRun)
	s.mux.HandleFunc("GET /api/outcome", s.handleOutcome)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
}

type runRequest struct {
	Seed string `json:"seed"`
}

// handleRun triggers one pipeline run and blocks until it finishes. A run
// already in flight answers 409 immediately.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	outcome := s.pipeline.RunOnce(r.Context(), req.Seed)
	switch outcome.Status {
	case types.StatusBusy:
		writeJSON(w, http.StatusConflict, outcome)
	case types.StatusFailed:
		writeJSON(w, http.StatusBadGateway, outcome)
	default:
		writeJSON(w, http.StatusOK, outcome)
	}
}

// handleOutcome reports the most recently finished run.
func (s *Server) handleOutcome(w http.ResponseWriter, _ *http.Request) {
	outcome := s.pipeline.LastOutcome()
	if outcome == nil {
		writeError(w, http.StatusNotFound, "no run has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// limitBody restricts the request body to maxRequestBody bytes.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		next.ServeHTTP(w, r)
	})
}

func jsonContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
