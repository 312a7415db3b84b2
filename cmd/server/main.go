// Command server starts the essay analysis HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ai "github.com/fairyhunter13/writing-compass/internal/adapter/ai"
	"github.com/fairyhunter13/writing-compass/internal/adapter/ai/stub"
	rediscache "github.com/fairyhunter13/writing-compass/internal/adapter/cache/redis"
	httpserver "github.com/fairyhunter13/writing-compass/internal/adapter/httpserver"
	"github.com/fairyhunter13/writing-compass/internal/adapter/observability"
	"github.com/fairyhunter13/writing-compass/internal/adapter/queue/redpanda"
	"github.com/fairyhunter13/writing-compass/internal/adapter/repo/memory"
	"github.com/fairyhunter13/writing-compass/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/writing-compass/internal/adapter/repo/sqlite"
	"github.com/fairyhunter13/writing-compass/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/app"
	"github.com/fairyhunter13/writing-compass/internal/config"
	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/internal/service/ratelimiter"
	"github.com/fairyhunter13/writing-compass/internal/usecase"
)

// reportStore is what the server needs from a storage backend.
type reportStore interface {
	domain.ReportRepository
	domain.ReportPurger
}

// model is a backend that both writes reports and suggests paragraphs.
type model interface {
	domain.ReportGenerator
	domain.ParagraphSuggester
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rubric, err := config.LoadRubric(cfg.RubricPath)
	if err != nil {
		slog.Error("rubric load failed", slog.Any("error", err))
		os.Exit(1)
	}

	store, dbPing, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("storage open failed", slog.String("driver", cfg.Storage()), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	// Redis backs both the report cache and the shared generation limiter.
	var (
		cache     domain.ReportCache
		limiter   ratelimiter.Limiter
		redisPing app.Pinger
	)
	if cfg.CacheEnabled() {
		rdb, err := rediscache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, cache and generation limit disabled", slog.Any("error", err))
		} else {
			defer func() { _ = rdb.Close() }()
			rc := rediscache.New(rdb, "")
			cache, redisPing = rc, rc
			if cfg.GenerationPerMin > 0 {
				limiter = ratelimiter.NewRedisLuaLimiter(rdb, map[string]ratelimiter.BucketConfig{
					usecase.GenerationScope: ratelimiter.NewBucketConfigFromPerMinute(cfg.GenerationPerMin),
				})
			}
		}
	}

	var (
		events    domain.EventPublisher = redpanda.NoopPublisher{}
		kafkaPing app.Pinger
	)
	if cfg.EventsEnabled() {
		producer, err := redpanda.NewProducer(ctx, cfg.KafkaBrokers, cfg.ReportEventsTopic)
		if err != nil {
			slog.Warn("report events disabled", slog.Any("error", err))
		} else {
			defer func() { _ = producer.Close() }()
			events, kafkaPing = producer, producer
		}
	}

	backend, modelName, err := newModel(cfg, rubric)
	if err != nil {
		slog.Error("model setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	var generator domain.ReportGenerator = backend
	if cache != nil {
		generator = ai.NewCachedGenerator(backend, cache, modelName, rubric, cfg.ReportCacheTTL)
	}

	analyzeSvc := usecase.NewAnalyzeService(generator, analysis.NewAnalyzer(rubric), store, events, limiter)
	suggestSvc := usecase.NewSuggestService(backend, limiter)
	resultSvc := usecase.NewResultService(store)

	if cfg.DataRetentionDays > 0 {
		retention := usecase.NewRetentionService(store, cfg.DataRetentionDays)
		go retention.Run(ctx, cfg.CleanupInterval)
		slog.Info("cleanup service started", slog.Int("retention_days", cfg.DataRetentionDays), slog.Duration("interval", cfg.CleanupInterval))
	}

	var tikaPing app.Pinger
	var extractor domain.TextExtractor
	if cfg.ExtractionEnabled() {
		tc := tika.New(cfg.TikaURL)
		extractor, tikaPing = tc, tc
	}

	srv := httpserver.NewServer(cfg, analyzeSvc, suggestSvc, resultSvc,
		app.BuildReadinessProbes(dbPing, redisPing, kafkaPing, tikaPing)...)
	srv.Extractor = extractor
	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.BuildRouter(cfg, srv),
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting",
			slog.Int("port", cfg.Port),
			slog.String("storage", cfg.Storage()),
			slog.String("model", modelName))
		errCh <- srvHTTP.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}

// openStore opens the configured report store. The returned pinger is nil
// for the in-memory store.
func openStore(ctx context.Context, cfg config.Config) (reportStore, app.Pinger, func(), error) {
	switch cfg.Storage() {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return postgres.NewReportRepo(pool), pool, pool.Close, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := sqlite.NewReportRepo(db)
		return repo, repo, func() { _ = db.Close() }, nil
	default:
		return memory.NewReportRepo(), nil, func() {}, nil
	}
}

// newModel returns the OpenAI-compatible client, or the offline stub in dev
// when no API key is configured.
func newModel(cfg config.Config, rubric analysis.Rubric) (model, string, error) {
	if cfg.OpenAIAPIKey != "" {
		return ai.New(cfg, rubric), cfg.LLMModel, nil
	}
	if cfg.IsDev() || cfg.IsTest() {
		slog.Warn("OPENAI_API_KEY not set, using offline stub model")
		return stub.New(rubric), "stub", nil
	}
	return nil, "", fmt.Errorf("op=main.newModel: OPENAI_API_KEY required in %s", cfg.AppEnv)
}
