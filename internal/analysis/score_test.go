package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

func uniform(g domain.Grade) map[domain.CategoryName]domain.CategoryAssessment {
	out := map[domain.CategoryName]domain.CategoryAssessment{}
	for _, n := range DefaultRubric().Names() {
		out[n] = domain.CategoryAssessment{Grade: g}
	}
	return out
}

func TestCalculateScore(t *testing.T) {
	t.Parallel()

	r := DefaultRubric()
	tests := []struct {
		name  string
		cats  map[domain.CategoryName]domain.CategoryAssessment
		title domain.Grade
		want  int
	}{
		{"all A+", uniform(domain.GradeAPlus), domain.GradeAPlus, 100},
		{"all F", uniform(domain.GradeF), domain.GradeF, 30},
		{"all B title C", uniform(domain.GradeB), domain.GradeC, 68},
		{"all B title B", uniform(domain.GradeB), domain.GradeB, 70},
		{"all B no title", uniform(domain.GradeB), "", 63},
		{"mixed rounds up", map[domain.CategoryName]domain.CategoryAssessment{
			CategoryLogic:        {Grade: domain.GradeB},
			CategoryStructure:    {Grade: domain.GradeA},
			CategoryExpression:   {Grade: domain.GradeCPlus},
			CategoryCompleteness: {Grade: domain.GradeAPlus},
		}, domain.GradeBPlus, 79},
		{"missing category contributes zero", map[domain.CategoryName]domain.CategoryAssessment{
			CategoryLogic: {Grade: domain.GradeAPlus},
		}, "", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalculateScore(tt.cats, tt.title, r))
		})
	}
}

func TestCalculateScore_Range(t *testing.T) {
	t.Parallel()

	r := DefaultRubric()
	for _, cg := range domain.Grades {
		for _, tg := range domain.Grades {
			s := CalculateScore(uniform(cg), tg, r)
			assert.GreaterOrEqual(t, s, 30)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestCalculateScore_Monotonic(t *testing.T) {
	t.Parallel()

	r := DefaultRubric()
	for _, name := range r.Names() {
		for i := 1; i < len(domain.Grades); i++ {
			better := uniform(domain.GradeC)
			worse := uniform(domain.GradeC)
			better[name] = domain.CategoryAssessment{Grade: domain.Grades[i-1]}
			worse[name] = domain.CategoryAssessment{Grade: domain.Grades[i]}
			assert.GreaterOrEqual(t, CalculateScore(better, domain.GradeC, r), CalculateScore(worse, domain.GradeC, r),
				"category %s: %s vs %s", name, domain.Grades[i-1], domain.Grades[i])
		}
	}
}
