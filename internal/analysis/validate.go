package analysis

import (
	"log/slog"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// ValidateCategories returns a fresh assessment map holding every rubric category
// with a grade from the nine-value enumeration. Missing categories become the
// all-default assessment and invalid grades are coerced to F.
func ValidateCategories(raw map[domain.CategoryName]domain.CategoryAssessment, paragraphCount int, rubric Rubric) map[domain.CategoryName]domain.CategoryAssessment {
	out := make(map[domain.CategoryName]domain.CategoryAssessment, len(rubric.Categories))
	for _, c := range rubric.Categories {
		a, ok := raw[c.Name]
		if !ok {
			slog.Debug("category missing, using default",
				slog.String("category", string(c.Name)),
				slog.Int("paragraph_count", paragraphCount))
			out[c.Name] = DefaultCategoryAssessment()
			continue
		}
		if !a.Grade.Valid() {
			slog.Debug("grade coerced",
				slog.String("category", string(c.Name)),
				slog.String("grade", string(a.Grade)),
				slog.Int("paragraph_count", paragraphCount))
			a.Grade = domain.GradeF
		}
		out[c.Name] = a
	}
	return out
}
