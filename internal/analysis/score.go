package analysis

import (
	"math"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// scoreEpsilon keeps representation error in the weighted sum from pushing an
// integral total to the next integer under ceil.
const scoreEpsilon = 1e-9

// CalculateScore combines category and title grades into the 0-100 composite score.
// The weighted sum is always rounded up. An empty titleGrade contributes nothing.
func CalculateScore(categories map[domain.CategoryName]domain.CategoryAssessment, titleGrade domain.Grade, rubric Rubric) int {
	var sum float64
	for _, c := range rubric.Categories {
		a, ok := categories[c.Name]
		if !ok {
			continue
		}
		sum += float64(GradeToPoint(a.Grade)) * c.Weight
	}
	if titleGrade != "" {
		sum += float64(GradeToPoint(titleGrade)) * rubric.TitleWeight
	}
	score := int(math.Ceil(sum - scoreEpsilon))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
