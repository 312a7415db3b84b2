package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade_Valid(t *testing.T) {
	t.Parallel()

	for _, g := range Grades {
		assert.True(t, g.Valid(), "grade %q should be valid", g)
	}
	for _, g := range []Grade{"", "a", "E", "A++", "B-", " A"} {
		assert.False(t, g.Valid(), "grade %q should be invalid", g)
	}
	assert.Len(t, Grades, 9)
}

func TestAnalysisReport_JSONFieldNames(t *testing.T) {
	t.Parallel()

	r := AnalysisReport{
		Title:      TitleAssessment{Current: "봄", Grade: GradeC, Suggestions: []string{}},
		Categories: map[CategoryName]CategoryAssessment{"논리성": {Grade: GradeB}},
		Statistics: Statistics{CharCount: 10, SentenceCount: 2, ParagraphCount: 1, AvgSentenceLength: 5},
		Score:      70,
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"title", "categories", "paragraphs", "structure", "totalEvaluation", "score", "statistics", "chart"} {
		assert.Contains(t, m, key)
	}
	stats := m["statistics"].(map[string]any)
	assert.EqualValues(t, 5, stats["avgSentenceLength"])
	cats := m["categories"].(map[string]any)
	assert.Equal(t, "B", cats["논리성"].(map[string]any)["grade"])
}

func TestChartGeometry_SVGPath(t *testing.T) {
	t.Parallel()

	g := ChartGeometry{Polygon: []Point{{X: 200, Y: 95}, {X: 350, Y: 200.456}, {X: 200, Y: 95}}}
	assert.Equal(t, "M 200.00,95.00 L 350.00,200.46 L 200.00,95.00", g.SVGPath())
	assert.Equal(t, "", ChartGeometry{}.SVGPath())
}
