package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/writing-compass/internal/domain"
	"github.com/fairyhunter13/writing-compass/pkg/textx"
)

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+["'”’」』)]?\s*`)

// ComputeStatistics derives writing statistics from the essay text.
func ComputeStatistics(content string) domain.Statistics {
	content = textx.NormalizeNFC(content)
	chars := CountChars(content)
	sentences := CountSentences(content)
	return domain.Statistics{
		CharCount:         chars,
		SentenceCount:     sentences,
		ParagraphCount:    CountParagraphs(content),
		AvgSentenceLength: avgSentenceLength(chars, sentences),
	}
}

// CountChars counts characters with every line break removed.
func CountChars(content string) int {
	return utf8.RuneCountInString(strings.NewReplacer("\r", "", "\n", "").Replace(content))
}

// CountSentences counts runs terminated by '.', '!' or '?', ignoring runs that are
// only punctuation once trimmed.
func CountSentences(content string) int {
	n := 0
	for _, s := range sentenceRe.FindAllString(content, -1) {
		if strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsPunct(r) }) != "" {
			n++
		}
	}
	return n
}

// CountParagraphs counts non-blank lines when the text has a line break; a single
// unbroken block is one paragraph. The result is at least 1.
func CountParagraphs(content string) int {
	if !strings.Contains(content, "\n") {
		return 1
	}
	n := countNonBlankLines(content)
	if n < 1 {
		return 1
	}
	return n
}

// CountParagraphsForDisplay is the pre-submission counter: empty input shows 0.
func CountParagraphsForDisplay(content string) int {
	if strings.TrimSpace(content) == "" {
		return 0
	}
	return CountParagraphs(content)
}

func countNonBlankLines(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func avgSentenceLength(chars, sentences int) int {
	if sentences == 0 {
		return 0
	}
	return int(math.Round(float64(chars) / float64(sentences)))
}
