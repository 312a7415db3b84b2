package analysis

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

var (
	paragraphTagRe  = regexp.MustCompile(`(?m)^[ \t]*\[[ \t]*(\d+)[ \t]*문단[ \t]*\]`)
	paragraphLabels = newLabelSet(LabelOriginal, LabelAnalysis, LabelGoodPoints, LabelImprovements, LabelRewrites, LabelSpelling)
	correctionSepRe = regexp.MustCompile(`\s*(?:→|->|=>|,)\s*`)

	extractParagraphFields = paragraphLabels.extract
)

// ParseParagraphs extracts every "[<N>문단]" block, sorted ascending by N.
// A malformed block is skipped without affecting the others.
func ParseParagraphs(text string) []domain.ParagraphAssessment {
	out := []domain.ParagraphAssessment{}
	for _, m := range paragraphTagRe.FindAllStringSubmatchIndex(text, -1) {
		if p, ok := parseParagraphBlock(text, m); ok {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func parseParagraphBlock(text string, m []int) (p domain.ParagraphAssessment, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("paragraph extraction failed", slog.Any("recover", rec))
			p, ok = domain.ParagraphAssessment{}, false
		}
	}()
	idx, err := strconv.Atoi(text[m[2]:m[3]])
	if err != nil || idx <= 0 {
		return domain.ParagraphAssessment{}, false
	}
	f := extractParagraphFields(untilNextMarker(text[m[1]:]))
	return domain.ParagraphAssessment{
		Index:               idx,
		Content:             f[LabelOriginal],
		Analysis:            f[LabelAnalysis],
		GoodPoints:          f[LabelGoodPoints],
		Improvements:        f[LabelImprovements],
		Suggestions:         listItems(f[LabelRewrites]),
		SpellingCorrections: parseCorrections(f[LabelSpelling]),
	}, true
}

// parseCorrections reads "original → fixed, reason" lines. Lines without both an
// original and a fixed form are dropped.
func parseCorrections(s string) []domain.SpellingCorrection {
	out := []domain.SpellingCorrection{}
	for _, line := range listItems(s) {
		parts := correctionSepRe.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		orig := strings.TrimSpace(parts[0])
		fixed := strings.TrimSpace(parts[1])
		if orig == "" || fixed == "" {
			continue
		}
		reason := ""
		if len(parts) > 2 {
			reason = strings.TrimSpace(strings.Join(parts[2:], ", "))
		}
		out = append(out, domain.SpellingCorrection{Original: orig, Fixed: fixed, Reason: reason})
	}
	return out
}
