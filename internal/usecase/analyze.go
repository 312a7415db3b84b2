// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/writing-compass/internal/adapter/observability"
	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/internal/service/ratelimiter"
)

// GenerationScope names the rate-limit bucket for model-backed requests.
const GenerationScope = "generation"

// AnalyzeService turns an essay into a stored, scored AnalysisReport.
type AnalyzeService struct {
	Generator domain.ReportGenerator
	Analyzer  *analysis.Analyzer
	Reports   domain.ReportRepository
	Events    domain.EventPublisher
	Limiter   ratelimiter.Limiter
}

// NewAnalyzeService constructs an AnalyzeService. Events and Limiter may be nil.
func NewAnalyzeService(g domain.ReportGenerator, a *analysis.Analyzer, r domain.ReportRepository, e domain.EventPublisher, l ratelimiter.Limiter) AnalyzeService {
	return AnalyzeService{Generator: g, Analyzer: a, Reports: r, Events: e, Limiter: l}
}

// AnalyzeResult is a stored report with its id.
type AnalyzeResult struct {
	ID     string                `json:"id"`
	Report domain.AnalysisReport `json:"report"`
}

// Analyze generates the evaluation text for essay, parses it and stores the result.
// client identifies the caller for rate limiting.
func (s AnalyzeService) Analyze(ctx domain.Context, essay domain.EssayMetadata, client string) (AnalyzeResult, error) {
	if err := analysis.ValidateEssay(essay); err != nil {
		return AnalyzeResult{}, err
	}
	if err := ratelimiter.Admit(ctx, s.Limiter, GenerationScope, client); err != nil {
		return AnalyzeResult{}, err
	}

	start := time.Now()
	raw, err := s.Generator.GenerateReport(ctx, essay)
	if err != nil {
		slog.ErrorContext(ctx, "report generation failed", slog.String("client", client), slog.Any("error", err))
		return AnalyzeResult{}, fmt.Errorf("op=usecase.Analyze: %w", err)
	}
	report, err := s.Analyzer.Analyze(ctx, raw, essay)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("op=usecase.Analyze: %w", err)
	}

	stored := domain.StoredReport{Report: report, RawText: raw, CreatedAt: time.Now().UTC()}
	id, err := s.Reports.Save(ctx, stored)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("op=usecase.Analyze: %w", err)
	}
	s.publish(ctx, id, report, stored.CreatedAt)
	observability.ObserveReport("generated", report)

	slog.InfoContext(ctx, "report analyzed",
		slog.String("report_id", id),
		slog.Int("score", report.Score),
		slog.Duration("elapsed", time.Since(start)))
	return AnalyzeResult{ID: id, Report: report}, nil
}

// ParseOnly analyzes already-generated report text without calling the model or storing it.
func (s AnalyzeService) ParseOnly(ctx domain.Context, raw string, essay domain.EssayMetadata) (domain.AnalysisReport, error) {
	report, err := s.Analyzer.Analyze(ctx, raw, essay)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	observability.ObserveReport("parsed", report)
	return report, nil
}

// publish emits the report event; failures are logged and never fail the request.
func (s AnalyzeService) publish(ctx domain.Context, id string, r domain.AnalysisReport, at time.Time) {
	if s.Events == nil {
		return
	}
	ev := domain.ReportEvent{
		ReportID:       id,
		Score:          r.Score,
		Grades:         make(map[domain.CategoryName]domain.Grade, len(r.Categories)),
		TitleGrade:     r.Title.Grade,
		ParagraphCount: r.Statistics.ParagraphCount,
		CreatedAt:      at,
	}
	for name, c := range r.Categories {
		ev.Grades[name] = c.Grade
	}
	if err := s.Events.PublishReport(ctx, ev); err != nil {
		slog.WarnContext(ctx, "report event not published", slog.String("report_id", id), slog.Any("error", err))
	}
}
