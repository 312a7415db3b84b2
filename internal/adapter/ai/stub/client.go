// Package stub provides a deterministic report generator for local runs without an API key.
package stub

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// Client returns well-formed reports that grade every category B.
type Client struct {
	rubric analysis.Rubric
}

// New constructs a stub over rubric.
func New(rubric analysis.Rubric) *Client { return &Client{rubric: rubric} }

// GenerateReport renders a complete report in the expected grammar.
func (c *Client) GenerateReport(_ domain.Context, essay domain.EssayMetadata) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", analysis.HeadingTitle)
	fmt.Fprintf(&b, "%s: B\n", analysis.LabelGrade)
	fmt.Fprintf(&b, "%s: '%s'은(는) 글의 내용을 무난하게 보여 줍니다.\n", analysis.LabelAnalysis, strings.TrimSpace(essay.Title))
	fmt.Fprintf(&b, "%s: 1. 나의 %s 2. %s 이야기\n\n", analysis.LabelSuggestions, strings.TrimSpace(essay.Title), strings.TrimSpace(essay.Title))
	b.WriteString("# 글 분석\n")
	for _, cat := range c.rubric.Categories {
		fmt.Fprintf(&b, "[%s]\n", cat.Name)
		fmt.Fprintf(&b, "%s: B\n", analysis.LabelGrade)
		fmt.Fprintf(&b, "%s: %s 면에서 고르게 잘 썼습니다.\n", analysis.LabelEvaluation, cat.Name)
		fmt.Fprintf(&b, "%s: 생각을 솔직하게 표현했습니다.\n", analysis.LabelGoodPoints)
		fmt.Fprintf(&b, "%s: 까닭을 한 가지 더 써 보세요.\n\n", analysis.LabelImprovements)
	}
	for i, p := range paragraphs(essay.Content) {
		fmt.Fprintf(&b, "[%d문단]\n", i+1)
		fmt.Fprintf(&b, "%s: %s\n", analysis.LabelOriginal, p)
		fmt.Fprintf(&b, "%s: 중심 생각이 드러납니다.\n", analysis.LabelAnalysis)
		fmt.Fprintf(&b, "%s: 문장이 분명합니다.\n", analysis.LabelGoodPoints)
		fmt.Fprintf(&b, "%s: 꾸며 주는 말을 더해 보세요.\n\n", analysis.LabelImprovements)
	}
	fmt.Fprintf(&b, "# %s\n", analysis.HeadingStructure)
	fmt.Fprintf(&b, "%s: %d개의 문단으로 되어 있습니다.\n", analysis.LabelStructureCurrent, len(paragraphs(essay.Content)))
	fmt.Fprintf(&b, "%s: 처음, 가운데, 끝으로 나누어 보세요.\n", analysis.LabelStructureImproved)
	fmt.Fprintf(&b, "%s: 끝 문단에 느낀 점을 정리하세요.\n\n", analysis.LabelStructureActions)
	b.WriteString("총평: 자신의 경험을 차분하게 잘 썼어요.\n")
	return b.String(), nil
}

// SuggestParagraphs returns one suggestion per non-blank line of content.
func (c *Client) SuggestParagraphs(_ domain.Context, content string) (string, error) {
	out := domain.ParagraphSuggestions{Paragraphs: []domain.ParagraphSuggestion{}}
	for _, p := range paragraphs(content) {
		out.Paragraphs = append(out.Paragraphs, domain.ParagraphSuggestion{Text: p, Reason: "하나의 중심 생각을 담고 있습니다."})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("op=stub.SuggestParagraphs: %w", err)
	}
	return string(b), nil
}

func paragraphs(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
