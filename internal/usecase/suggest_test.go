package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/internal/usecase"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	gen.On("SuggestParagraphs", mock.Anything, "본문").
		Return(`{"paragraphs":[{"text":" 첫 문단 ","reason":"도입"}]}`, nil)

	out, err := usecase.NewSuggestService(gen, nil).Suggest(context.Background(), "본문", "c")
	require.NoError(t, err)
	require.Len(t, out.Paragraphs, 1)
	assert.Equal(t, "첫 문단", out.Paragraphs[0].Text)
	assert.Equal(t, "도입", out.Paragraphs[0].Reason)
}

func TestSuggest_Errors(t *testing.T) {
	t.Parallel()

	_, err := usecase.NewSuggestService(&mockGenerator{}, nil).Suggest(context.Background(), "  ", "c")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = usecase.NewSuggestService(&mockGenerator{}, &denyLimiter{}).Suggest(context.Background(), "본문", "c")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	gen := &mockGenerator{}
	gen.On("SuggestParagraphs", mock.Anything, mock.Anything).Return("not json", nil)
	_, err = usecase.NewSuggestService(gen, nil).Suggest(context.Background(), "본문", "c")
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}
