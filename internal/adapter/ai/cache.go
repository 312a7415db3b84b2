package ai

import (
	"log/slog"
	"time"

	"github.com/fairyhunter13/writing-compass/internal/adapter/observability"
	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/pkg/textx"
)

// cachedGenerator serves report text from a ReportCache keyed by model and the
// full prompt pair. Cache failures are logged and bypassed.
type cachedGenerator struct {
	base   domain.ReportGenerator
	cache  domain.ReportCache
	model  string
	rubric analysis.Rubric
	ttl    time.Duration
}

// NewCachedGenerator wraps base with cache. If cache is nil, base is returned unmodified.
func NewCachedGenerator(base domain.ReportGenerator, cache domain.ReportCache, model string, rubric analysis.Rubric, ttl time.Duration) domain.ReportGenerator {
	if cache == nil || base == nil {
		return base
	}
	return &cachedGenerator{base: base, cache: cache, model: model, rubric: rubric, ttl: ttl}
}

// ReportCacheKey derives the cache key from model and the prompts BuildReportPrompt
// sends, so student metadata and rubric changes produce distinct keys.
func ReportCacheKey(model string, rubric analysis.Rubric, essay domain.EssayMetadata) string {
	system, user := BuildReportPrompt(rubric, essay)
	return "report:" + textx.Hash(model, textx.NormalizeNFC(system), textx.NormalizeNFC(user))
}

func (c *cachedGenerator) GenerateReport(ctx domain.Context, essay domain.EssayMetadata) (string, error) {
	lg := observability.LoggerFromContext(ctx)
	key := ReportCacheKey(c.model, c.rubric, essay)
	if text, ok, err := c.cache.Get(ctx, key); err != nil {
		lg.Warn("report cache get failed", slog.Any("error", err))
	} else if ok {
		lg.Debug("report cache hit", slog.String("key", key))
		return text, nil
	}
	text, err := c.base.GenerateReport(ctx, essay)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, text, c.ttl); err != nil {
		lg.Warn("report cache set failed", slog.Any("error", err))
	}
	return text, nil
}
