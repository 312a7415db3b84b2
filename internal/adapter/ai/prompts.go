package ai

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/domain"
)

const reportSystemPrompt = `당신은 초등학생의 글쓰기를 지도하는 국어 선생님입니다.
학생의 글을 읽고 아래 형식을 정확히 지켜 평가 보고서를 작성하세요.
등급은 A+, A, B+, B, C+, C, D+, D, F 중 하나만 사용하세요.
형식 외의 인사말이나 설명은 쓰지 마세요.`

const suggestionSystemPrompt = `당신은 초등학생의 글을 문단으로 나누어 주는 국어 선생님입니다.
글의 내용을 바꾸지 말고 자연스러운 문단으로 나누세요.
반드시 다음 JSON 형식으로만 답하세요:
{"paragraphs":[{"text":"문단 내용","reason":"이렇게 나눈 이유"}]}`

// BuildReportPrompt returns the system and user prompts for a report request.
// Category tags follow the rubric so a custom table changes the requested blocks.
func BuildReportPrompt(rubric analysis.Rubric, essay domain.EssayMetadata) (system, user string) {
	var b strings.Builder
	b.WriteString(reportSystemPrompt)
	b.WriteString("\n\n# " + analysis.HeadingTitle + "\n")
	writeField(&b, analysis.LabelGrade, "등급")
	writeField(&b, analysis.LabelAnalysis, "제목에 대한 분석")
	writeField(&b, analysis.LabelSuggestions, "1. 제목 2. 제목 3. 제목")
	b.WriteString("\n# 글 분석\n")
	for _, c := range rubric.Categories {
		fmt.Fprintf(&b, "[%s] (%s)\n", c.Name, c.Description)
		writeField(&b, analysis.LabelGrade, "등급")
		writeField(&b, analysis.LabelEvaluation, "평가")
		writeField(&b, analysis.LabelGoodPoints, "잘된 점")
		writeField(&b, analysis.LabelImprovements, "개선점")
		b.WriteString("\n")
	}
	b.WriteString("[1문단]\n")
	writeField(&b, analysis.LabelOriginal, "문단 원문")
	writeField(&b, analysis.LabelAnalysis, "분석")
	writeField(&b, analysis.LabelGoodPoints, "잘된 점")
	writeField(&b, analysis.LabelImprovements, "개선점")
	b.WriteString(analysis.LabelRewrites + ":\n- 바꾸어 쓴 문장\n")
	b.WriteString(analysis.LabelSpelling + ":\n- 틀린 말 → 바른 말, 이유\n")
	b.WriteString("(문단마다 [2문단], [3문단] ... 으로 반복)\n")
	b.WriteString("\n# " + analysis.HeadingStructure + "\n")
	writeField(&b, analysis.LabelStructureCurrent, "현재 구조")
	writeField(&b, analysis.LabelStructureImproved, "개선안")
	writeField(&b, analysis.LabelStructureActions, "실행 방안")
	b.WriteString("\n총평: 한 줄 총평\n")
	system = b.String()

	user = fmt.Sprintf("학년: %s\n반: %s\n번호: %s\n이름: %s\n제목: %s\n\n%s",
		essay.Grade, essay.Class, essay.Number, essay.Name, strings.TrimSpace(essay.Title), strings.TrimSpace(essay.Content))
	return system, user
}

// BuildSuggestionPrompt returns the prompts for a paragraph-split request.
func BuildSuggestionPrompt(content string) (system, user string) {
	return suggestionSystemPrompt, strings.TrimSpace(content)
}

func writeField(b *strings.Builder, label, placeholder string) {
	fmt.Fprintf(b, "%s: <%s>\n", label, placeholder)
}
