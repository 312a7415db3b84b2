package stub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
)

func TestClient_ReportParsesCleanly(t *testing.T) {
	t.Parallel()

	essay := domain.EssayMetadata{Title: "소풍", Content: "오늘은 소풍을 갔다.\n김밥을 먹었다."}
	c := New(analysis.DefaultRubric())
	raw, err := c.GenerateReport(context.Background(), essay)
	require.NoError(t, err)

	report, err := analysis.NewAnalyzer(analysis.DefaultRubric()).Analyze(context.Background(), raw, essay)
	require.NoError(t, err)
	for _, cat := range report.Categories {
		assert.Equal(t, domain.GradeB, cat.Grade)
	}
	assert.Equal(t, domain.GradeB, report.Title.Grade)
	assert.Len(t, report.Title.Suggestions, 2)
	require.Len(t, report.Paragraphs, 2)
	assert.Equal(t, "김밥을 먹었다.", report.Paragraphs[1].Content)
	assert.Equal(t, 70, report.Score)
	assert.NotEmpty(t, report.TotalEvaluation)
}

func TestClient_SuggestParagraphs(t *testing.T) {
	t.Parallel()

	raw, err := New(analysis.DefaultRubric()).SuggestParagraphs(context.Background(), "첫 문단\n\n둘째 문단")
	require.NoError(t, err)
	got, err := analysis.ParseParagraphSuggestions(raw)
	require.NoError(t, err)
	require.Len(t, got.Paragraphs, 2)
	assert.Equal(t, "둘째 문단", got.Paragraphs[1].Text)
}
