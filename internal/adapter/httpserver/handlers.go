package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/config"
	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/internal/usecase"
)

// ReadinessProbe is one named dependency check for /readyz.
type ReadinessProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg     config.Config
	Analyze usecase.AnalyzeService
	Suggest usecase.SuggestService
	Results usecase.ResultService
	Probes  []ReadinessProbe
	// Extractor handles document uploads; nil limits uploads to .txt.
	Extractor domain.TextExtractor
}

// NewServer constructs a Server with all handlers and checks wired.
func NewServer(cfg config.Config, analyze usecase.AnalyzeService, suggest usecase.SuggestService, results usecase.ResultService, probes ...ReadinessProbe) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Suggest: suggest, Results: results, Probes: probes}
}

// clientKey identifies the caller for per-client generation limits.
func clientKey(r *http.Request) string {
	if k, err := httprate.KeyByIP(r); err == nil && k != "" {
		return k
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AnalyzeHandler generates, analyzes and stores a report for the posted essay.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if writeNotAcceptable(w, r) {
			return
		}
		var req EssayRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		res, err := s.Analyze.Analyze(r.Context(), req.Metadata(), clientKey(r))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.Header().Set("Location", "/v1/analyses/"+res.ID)
		writeJSON(w, http.StatusCreated, res)
	}
}

// ParseHandler analyzes caller-supplied report text without calling the model.
func (s *Server) ParseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if writeNotAcceptable(w, r) {
			return
		}
		var req ParseRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		report, err := s.Analyze.ParseOnly(r.Context(), req.RawText, req.Essay.Metadata())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"report": report})
	}
}

// SuggestHandler proposes a paragraph split for the posted content.
func (s *Server) SuggestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if writeNotAcceptable(w, r) {
			return
		}
		var req SuggestRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		content := EssayRequest{Content: req.Content}.Metadata().Content
		out, err := s.Suggest.Suggest(r.Context(), content, clientKey(r))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// StatisticsHandler returns live statistics for draft content.
func (s *Server) StatisticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StatisticsRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		content := EssayRequest{Content: req.Content}.Metadata().Content
		writeJSON(w, http.StatusOK, map[string]any{
			"statistics":              analysis.ComputeStatistics(content),
			"display_paragraph_count": analysis.CountParagraphsForDisplay(content),
		})
	}
}

// ResultHandler returns a stored report, honoring If-None-Match.
func (s *Server) ResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if writeNotAcceptable(w, r) {
			return
		}
		id := chi.URLParam(r, "id")
		if id == "" || len(id) > 100 {
			writeError(w, r, fmt.Errorf("%w: invalid id", domain.ErrInvalidArgument), nil)
			return
		}
		status, res, etag, err := s.Results.Fetch(r.Context(), id, r.Header.Get("If-None-Match"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.Header().Set("ETag", etag)
		if status == http.StatusNotModified {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, res)
	}
}

// ReadyzHandler probes every configured dependency.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]usecase.ReadinessCheck, 0, len(s.Probes))
		ok := true
		for _, p := range s.Probes {
			c := usecase.ReadinessCheck{Name: p.Name, OK: true}
			if err := p.Check(ctx); err != nil {
				c.OK = false
				c.Details = err.Error()
				ok = false
			}
			checks = append(checks, c)
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
