package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	got := ParseCategory(fullReport, CategoryLogic)
	assert.Equal(t, domain.CategoryAssessment{
		Grade:        domain.GradeB,
		Evaluation:   "주장과 근거가 잘 연결됩니다.",
		GoodPoints:   "예시가 구체적입니다.",
		Improvements: "결론을 더 분명히 하세요.",
	}, got)

	assert.Equal(t, domain.GradeAPlus, ParseCategory(fullReport, CategoryCompleteness).Grade)
	assert.Equal(t, domain.GradeCPlus, ParseCategory(fullReport, CategoryExpression).Grade)
}

func TestParseCategory_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want domain.CategoryAssessment
	}{
		{
			name: "missing block",
			text: "[구조성]\n등급: A\n",
			want: domain.CategoryAssessment{Grade: domain.GradeF},
		},
		{
			name: "empty text",
			text: "",
			want: domain.CategoryAssessment{Grade: domain.GradeF},
		},
		{
			name: "unparseable grade",
			text: "[논리성]\n등급: 우수\n평가: 좋아요\n",
			want: domain.CategoryAssessment{Grade: domain.GradeF, Evaluation: "좋아요"},
		},
		{
			name: "english word is not a grade",
			text: "[논리성]\n등급: Bad\n평가: 좋아요\n",
			want: domain.CategoryAssessment{Grade: domain.GradeF, Evaluation: "좋아요"},
		},
		{
			name: "sentence starting with a grade letter",
			text: "[논리성]\n등급: Cannot determine\n",
			want: domain.CategoryAssessment{Grade: domain.GradeF},
		},
		{
			name: "markdown decorations",
			text: "[논리성]\n- **등급**: **B+**\n- **평가**: 근거가 충분합니다.\n",
			want: domain.CategoryAssessment{Grade: domain.GradeBPlus, Evaluation: "근거가 충분합니다."},
		},
		{
			name: "multi-line value stops at next label",
			text: "[논리성]\n평가: 첫 줄\n둘째 줄\n등급: C\n",
			want: domain.CategoryAssessment{Grade: domain.GradeC, Evaluation: "첫 줄\n둘째 줄"},
		},
		{
			name: "first occurrence wins",
			text: "[논리성]\n등급: D+\n등급: A\n",
			want: domain.CategoryAssessment{Grade: domain.GradeDPlus},
		},
		{
			name: "fullwidth colon",
			text: "[논리성]\n등급： A\n",
			want: domain.CategoryAssessment{Grade: domain.GradeA},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseCategory(tt.text, CategoryLogic))
		})
	}
}

func TestValidateCategories(t *testing.T) {
	t.Parallel()

	raw := map[domain.CategoryName]domain.CategoryAssessment{
		CategoryLogic:      {Grade: domain.GradeA, Evaluation: "좋음"},
		CategoryStructure:  {Grade: "Z"},
		CategoryExpression: {Grade: ""},
		"기타":               {Grade: domain.GradeA},
	}
	got := ValidateCategories(raw, 3, DefaultRubric())

	assert.Len(t, got, 4)
	assert.Equal(t, domain.CategoryAssessment{Grade: domain.GradeA, Evaluation: "좋음"}, got[CategoryLogic])
	assert.Equal(t, domain.GradeF, got[CategoryStructure].Grade)
	assert.Equal(t, domain.GradeF, got[CategoryExpression].Grade)
	assert.Equal(t, DefaultCategoryAssessment(), got[CategoryCompleteness])
	assert.NotContains(t, got, domain.CategoryName("기타"))
	for _, a := range got {
		assert.True(t, a.Grade.Valid())
	}
	assert.Equal(t, domain.Grade("Z"), raw[CategoryStructure].Grade, "input must not be mutated")
}
