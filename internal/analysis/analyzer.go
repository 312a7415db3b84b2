package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// buildChart is swapped in tests to exercise assembly failures.
var buildChart = BuildChart

// Analyzer runs the extraction-validation-scoring pipeline over one report.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	rubric Rubric
	center float64
	radius float64
}

// NewAnalyzer constructs an Analyzer over the given rubric.
func NewAnalyzer(rubric Rubric) *Analyzer {
	return &Analyzer{rubric: rubric, center: ChartCenter, radius: ChartRadius}
}

// Rubric returns the category table this analyzer scores with.
func (a *Analyzer) Rubric() Rubric { return a.rubric }

// ValidateEssay rejects submissions missing a title or content.
func ValidateEssay(essay domain.EssayMetadata) error {
	if strings.TrimSpace(essay.Title) == "" {
		return fmt.Errorf("%w: title required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(essay.Content) == "" {
		return fmt.Errorf("%w: content required", domain.ErrInvalidArgument)
	}
	return nil
}

// Analyze converts raw report text into an AnalysisReport. Partially malformed
// input still yields a well-formed report; only missing essay fields or an
// unexpected failure while assembling the result produce an error.
func (a *Analyzer) Analyze(ctx context.Context, raw string, essay domain.EssayMetadata) (report domain.AnalysisReport, err error) {
	if err := ValidateEssay(essay); err != nil {
		return domain.AnalysisReport{}, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "report assembly failed", slog.Any("recover", rec))
			report = domain.AnalysisReport{}
			err = fmt.Errorf("op=analysis.Analyze: %w", domain.ErrRenderFailed)
		}
	}()

	stats := ComputeStatistics(essay.Content)

	parsed := make([]domain.CategoryAssessment, len(a.rubric.Categories))
	var g errgroup.Group
	for i, c := range a.rubric.Categories {
		g.Go(func() error {
			parsed[i] = ParseCategory(raw, c.Name)
			return nil
		})
	}
	_ = g.Wait()

	rawCats := make(map[domain.CategoryName]domain.CategoryAssessment, len(parsed))
	for i, c := range a.rubric.Categories {
		rawCats[c.Name] = parsed[i]
	}
	categories := ValidateCategories(rawCats, stats.ParagraphCount, a.rubric)
	title := ParseTitle(raw, essay.Title)

	entries := make([]ChartEntry, 0, len(a.rubric.Categories))
	for _, c := range a.rubric.Categories {
		entries = append(entries, ChartEntry{Category: c.Name, Grade: categories[c.Name].Grade})
	}

	report = domain.AnalysisReport{
		Metadata:        essay,
		Title:           title,
		Categories:      categories,
		Paragraphs:      ParseParagraphs(raw),
		Structure:       ParseStructure(raw),
		TotalEvaluation: ParseTotalEvaluation(raw),
		Score:           CalculateScore(categories, title.Grade, a.rubric),
		Statistics:      stats,
		Chart:           buildChart(entries, a.center, a.radius),
	}
	slog.DebugContext(ctx, "report analyzed",
		slog.Int("score", report.Score),
		slog.Int("paragraphs", len(report.Paragraphs)),
		slog.Int("paragraph_count", stats.ParagraphCount))
	return report, nil
}
