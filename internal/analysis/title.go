package analysis

import (
	"log/slog"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

var (
	titleLabels        = newLabelSet(LabelGrade, LabelAnalysis, LabelSuggestions)
	extractTitleFields = titleLabels.extract
)

// ParseTitle extracts the "# 제목 분석" section. An absent assessment is neutral (C),
// unlike categories which default to F.
func ParseTitle(text, submitted string) (out domain.TitleAssessment) {
	def := domain.TitleAssessment{Current: submitted, Grade: domain.GradeC, Suggestions: []string{}}
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("title extraction failed", slog.Any("recover", rec))
			out = def
		}
	}()
	section := Section(text, HeadingTitle)
	if section == "" {
		return def
	}
	f := extractTitleFields(section)
	return domain.TitleAssessment{
		Current:     submitted,
		Grade:       gradeOr(f[LabelGrade], domain.GradeC),
		Analysis:    f[LabelAnalysis],
		Suggestions: numberedItems(f[LabelSuggestions]),
	}
}
