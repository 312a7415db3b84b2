package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// ParseParagraphSuggestions decodes the paragraph-suggestion JSON object. Unlike
// the report grammar this is strict: raw must be exactly one JSON value, and a
// payload that does not decode is reported as ErrSchemaInvalid with no partial
// result. Suggesters deliver the object already unwrapped from prose or fences.
func ParseParagraphSuggestions(raw string) (domain.ParagraphSuggestions, error) {
	var out domain.ParagraphSuggestions
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.ParagraphSuggestions{}, fmt.Errorf("%w: paragraph suggestions: %v", domain.ErrSchemaInvalid, err)
	}
	if out.Paragraphs == nil {
		return domain.ParagraphSuggestions{}, fmt.Errorf("%w: paragraph suggestions: missing paragraphs", domain.ErrSchemaInvalid)
	}
	for i, p := range out.Paragraphs {
		if strings.TrimSpace(p.Text) == "" {
			return domain.ParagraphSuggestions{}, fmt.Errorf("%w: paragraph suggestions: paragraph %d has no text", domain.ErrSchemaInvalid, i+1)
		}
		out.Paragraphs[i].Text = strings.TrimSpace(p.Text)
		out.Paragraphs[i].Reason = strings.TrimSpace(p.Reason)
	}
	return out, nil
}
