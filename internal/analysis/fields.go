package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Field labels of the report grammar.
const (
	LabelGrade        = "등급"
	LabelEvaluation   = "평가"
	LabelGoodPoints   = "잘된 점"
	LabelImprovements = "개선점"

	LabelOriginal    = "원문"
	LabelAnalysis    = "분석"
	LabelRewrites    = "표현 개선 제안"
	LabelSpelling    = "맞춤법 교정"
	LabelSuggestions = "제안"

	LabelStructureCurrent  = "현재 문단 구조"
	LabelStructureImproved = "문단 구성 개선안"
	LabelStructureActions  = "구체적 실행 방안"
)

// labelSet finds "label:" prefixes at line starts and slices the text between them.
type labelSet struct {
	re *regexp.Regexp
}

func newLabelSet(labels ...string) labelSet {
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	// longest first so alternation prefers the most specific label
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, l := range sorted {
		quoted[i] = regexp.QuoteMeta(l)
	}
	pattern := `(?m)^[ \t]*(?:[-•·][ \t]*)?(?:\*\*)?(` + strings.Join(quoted, "|") + `)(?:\*\*)?[ \t]*[:：](?:\*\*)?`
	return labelSet{re: regexp.MustCompile(pattern)}
}

// extract maps each label to its value. A value ends at the next known label or at
// the end of block; the first occurrence of a label wins.
func (ls labelSet) extract(block string) map[string]string {
	out := map[string]string{}
	matches := ls.re.FindAllStringSubmatchIndex(block, -1)
	for i, m := range matches {
		label := block[m[2]:m[3]]
		if _, dup := out[label]; dup {
			continue
		}
		end := len(block)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out[label] = strings.TrimSpace(block[m[1]:end])
	}
	return out
}

var (
	bulletRe    = regexp.MustCompile(`^(?:[-*•·▪◦]+|\d+[.)])[ \t]*`)
	numberingRe = regexp.MustCompile(`\d+\.\s+`)
)

// listItems splits a newline-delimited list, strips bullet markers and drops empty lines.
func listItems(s string) []string {
	items := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// numberedItems splits "1. a 2. b" style text on its numbering.
func numberedItems(s string) []string {
	items := []string{}
	for _, part := range numberingRe.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
