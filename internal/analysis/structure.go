package analysis

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// NotAnalyzed fills structure fields the report did not provide.
const NotAnalyzed = "아직 분석되지 않았습니다."

var (
	structureLabels = newLabelSet(LabelStructureCurrent, LabelStructureImproved, LabelStructureActions)
	totalRe         = regexp.MustCompile(`총평[ \t]*[:：][ \t]*([^\n]*)`)
)

// ParseStructure extracts the "# 문단 구성 제안" section.
func ParseStructure(text string) domain.StructureAssessment {
	f := structureLabels.extract(Section(text, HeadingStructure))
	return domain.StructureAssessment{
		Current:  orPlaceholder(f[LabelStructureCurrent]),
		Improved: orPlaceholder(f[LabelStructureImproved]),
		Actions:  orPlaceholder(f[LabelStructureActions]),
	}
}

// ParseTotalEvaluation returns the single line after "총평:", or "".
func ParseTotalEvaluation(text string) string {
	m := totalRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAnalyzed
	}
	return s
}
