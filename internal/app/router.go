// Package app assembles the HTTP router and dependency probes.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/fairyhunter13/writing-compass/internal/adapter/httpserver"
	"github.com/fairyhunter13/writing-compass/internal/adapter/observability"
	"github.com/fairyhunter13/writing-compass/internal/config"
)

// ParseOrigins splits a comma-separated origin list, trimming spaces.
// An empty input yields ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.RequestID())
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id", "ETag", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	timeout := cfg.HTTPWriteTimeout - time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Mutating endpoints; model-backed ones are additionally metered per client
	// in the usecases.
	r.Group(func(wr chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
		}
		wr.Use(httpserver.TimeoutMiddleware(timeout))
		wr.Post("/v1/analyses", srv.AnalyzeHandler())
		wr.Post("/v1/analyses/parse", srv.ParseHandler())
		wr.Post("/v1/essays/upload", srv.UploadHandler())
		wr.Post("/v1/paragraph-suggestions", srv.SuggestHandler())
		wr.Post("/v1/statistics", srv.StatisticsHandler())
	})
	r.Get("/v1/analyses/{id}", srv.ResultHandler())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/readyz", srv.ReadyzHandler())

	return httpserver.SecurityHeaders(r)
}
