package usecase

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/internal/service/ratelimiter"
)

// SuggestService proposes a paragraph split for unstructured essay content.
type SuggestService struct {
	Suggester domain.ParagraphSuggester
	Limiter   ratelimiter.Limiter
}

// NewSuggestService constructs a SuggestService. Limiter may be nil.
func NewSuggestService(s domain.ParagraphSuggester, l ratelimiter.Limiter) SuggestService {
	return SuggestService{Suggester: s, Limiter: l}
}

// Suggest returns the proposed paragraphs for content.
func (s SuggestService) Suggest(ctx domain.Context, content, client string) (domain.ParagraphSuggestions, error) {
	if strings.TrimSpace(content) == "" {
		return domain.ParagraphSuggestions{}, fmt.Errorf("%w: content required", domain.ErrInvalidArgument)
	}
	if err := ratelimiter.Admit(ctx, s.Limiter, GenerationScope, client); err != nil {
		return domain.ParagraphSuggestions{}, err
	}
	raw, err := s.Suggester.SuggestParagraphs(ctx, content)
	if err != nil {
		return domain.ParagraphSuggestions{}, fmt.Errorf("op=usecase.Suggest: %w", err)
	}
	out, err := analysis.ParseParagraphSuggestions(raw)
	if err != nil {
		return domain.ParagraphSuggestions{}, fmt.Errorf("op=usecase.Suggest: %w", err)
	}
	return out, nil
}
