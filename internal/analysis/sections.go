package analysis

import (
	"regexp"
	"strings"
)

// Section headings and tags of the report grammar.
const (
	HeadingTitle     = "제목 분석"
	HeadingStructure = "문단 구성 제안"
)

// markerRe matches any line that opens a new section: a "#" heading, a "[...]" tag,
// or the "총평:" summary line.
var markerRe = regexp.MustCompile(`(?m)^[ \t]*(?:#{1,6}[ \t]|\[[^\]\n]+\]|총평[ \t]*[:：])`)

// Section returns the text following a "# <heading>" line up to the next marker,
// or "" when the heading is absent.
func Section(text, heading string) string {
	re := regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*` + regexp.QuoteMeta(heading) + `[^\n]*`)
	return sectionAfter(text, re)
}

// Block returns the text following a "[<tag>]" marker up to the next marker,
// or "" when the tag is absent.
func Block(text, tag string) string {
	re := regexp.MustCompile(`(?m)^[ \t]*\[` + regexp.QuoteMeta(tag) + `\]`)
	return sectionAfter(text, re)
}

func sectionAfter(text string, marker *regexp.Regexp) string {
	loc := marker.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	return untilNextMarker(text[loc[1]:])
}

// untilNextMarker cuts body at the first marker that starts on a later line.
func untilNextMarker(body string) string {
	for _, loc := range markerRe.FindAllStringIndex(body, -1) {
		if loc[0] == 0 {
			continue
		}
		return strings.TrimSpace(body[:loc[0]])
	}
	return strings.TrimSpace(body)
}
