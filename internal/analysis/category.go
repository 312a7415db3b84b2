package analysis

import (
	"log/slog"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

var (
	categoryLabels        = newLabelSet(LabelGrade, LabelEvaluation, LabelGoodPoints, LabelImprovements)
	extractCategoryFields = categoryLabels.extract
)

// DefaultCategoryAssessment is what a category resolves to when nothing can be extracted.
func DefaultCategoryAssessment() domain.CategoryAssessment {
	return domain.CategoryAssessment{Grade: domain.GradeF}
}

// ParseCategory extracts the "[<name>]" block of text. It never panics; any internal
// failure degrades to DefaultCategoryAssessment.
func ParseCategory(text string, name domain.CategoryName) (out domain.CategoryAssessment) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("category extraction failed", slog.String("category", string(name)), slog.Any("recover", rec))
			out = DefaultCategoryAssessment()
		}
	}()
	block := Block(text, string(name))
	if block == "" {
		return DefaultCategoryAssessment()
	}
	f := extractCategoryFields(block)
	return domain.CategoryAssessment{
		Grade:        gradeOr(f[LabelGrade], domain.GradeF),
		Evaluation:   f[LabelEvaluation],
		GoodPoints:   f[LabelGoodPoints],
		Improvements: f[LabelImprovements],
	}
}
