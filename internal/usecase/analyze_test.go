package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/writing-compass/internal/adapter/ai/stub"
	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/internal/usecase"
)

var essay = domain.EssayMetadata{
	Title:   "나의 꿈",
	Content: "나는 의사가 되고 싶다. 아픈 사람을 돕고 싶기 때문이다.\n\n그래서 열심히 공부하고 있다.",
}

func TestAnalyze_Success(t *testing.T) {
	t.Parallel()

	rubric := analysis.DefaultRubric()
	repo := &mockRepo{}
	events := &mockEvents{}
	repo.On("Save", mock.Anything, mock.MatchedBy(func(r domain.StoredReport) bool {
		return r.RawText != "" && !r.CreatedAt.IsZero() && r.Report.Metadata.Title == essay.Title
	})).Return("rep-1", nil)
	events.On("PublishReport", mock.Anything, mock.MatchedBy(func(ev domain.ReportEvent) bool {
		return ev.ReportID == "rep-1" && len(ev.Grades) == len(rubric.Categories) && ev.ParagraphCount == 2
	})).Return(nil)

	svc := usecase.NewAnalyzeService(stub.New(rubric), analysis.NewAnalyzer(rubric), repo, events, nil)
	res, err := svc.Analyze(context.Background(), essay, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "rep-1", res.ID)
	assert.Equal(t, 70, res.Report.Score)
	assert.Len(t, res.Report.Chart.Axes, len(rubric.Categories))

	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestAnalyze_PublishFailureIgnored(t *testing.T) {
	t.Parallel()

	rubric := analysis.DefaultRubric()
	repo := &mockRepo{}
	events := &mockEvents{}
	repo.On("Save", mock.Anything, mock.Anything).Return("rep-2", nil)
	events.On("PublishReport", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := usecase.NewAnalyzeService(stub.New(rubric), analysis.NewAnalyzer(rubric), repo, events, nil)
	res, err := svc.Analyze(context.Background(), essay, "c")
	require.NoError(t, err)
	assert.Equal(t, "rep-2", res.ID)
}

func TestAnalyze_Errors(t *testing.T) {
	t.Parallel()

	rubric := analysis.DefaultRubric()

	t.Run("invalid essay", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{}
		svc := usecase.NewAnalyzeService(gen, analysis.NewAnalyzer(rubric), &mockRepo{}, nil, nil)
		_, err := svc.Analyze(context.Background(), domain.EssayMetadata{Title: "t"}, "c")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		gen.AssertNotCalled(t, "GenerateReport", mock.Anything, mock.Anything)
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()
		lim := &denyLimiter{}
		gen := &mockGenerator{}
		svc := usecase.NewAnalyzeService(gen, analysis.NewAnalyzer(rubric), &mockRepo{}, nil, lim)
		_, err := svc.Analyze(context.Background(), essay, "c")
		assert.ErrorIs(t, err, domain.ErrRateLimited)
		assert.Equal(t, 1, lim.calls)
	})

	t.Run("upstream", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{}
		gen.On("GenerateReport", mock.Anything, essay).Return("", domain.ErrUpstreamTimeout)
		svc := usecase.NewAnalyzeService(gen, analysis.NewAnalyzer(rubric), &mockRepo{}, nil, nil)
		_, err := svc.Analyze(context.Background(), essay, "c")
		assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
	})

	t.Run("save", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		repo.On("Save", mock.Anything, mock.Anything).Return("", errors.New("disk full"))
		svc := usecase.NewAnalyzeService(stub.New(rubric), analysis.NewAnalyzer(rubric), repo, nil, nil)
		_, err := svc.Analyze(context.Background(), essay, "c")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "op=usecase.Analyze")
	})
}

func TestParseOnly(t *testing.T) {
	t.Parallel()

	rubric := analysis.DefaultRubric()
	svc := usecase.NewAnalyzeService(nil, analysis.NewAnalyzer(rubric), nil, nil, nil)

	raw, err := stub.New(rubric).GenerateReport(context.Background(), essay)
	require.NoError(t, err)
	rep, err := svc.ParseOnly(context.Background(), raw, essay)
	require.NoError(t, err)
	assert.Equal(t, 70, rep.Score)

	_, err = svc.ParseOnly(context.Background(), raw, domain.EssayMetadata{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
