// Package analysis turns a free-form evaluation report into a validated AnalysisReport.
//
// Every extractor in this package is total: missing sections or fields resolve to
// documented defaults and failures inside one unit never abort the rest.
package analysis

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

var gradePoints = map[domain.Grade]int{
	domain.GradeAPlus: 100,
	domain.GradeA:     90,
	domain.GradeBPlus: 80,
	domain.GradeB:     70,
	domain.GradeCPlus: 60,
	domain.GradeC:     50,
	domain.GradeDPlus: 40,
	domain.GradeD:     35,
	domain.GradeF:     30,
}

var gradeChartValues = map[domain.Grade]float64{
	domain.GradeAPlus: 1.0,
	domain.GradeA:     0.9,
	domain.GradeBPlus: 0.8,
	domain.GradeB:     0.7,
	domain.GradeCPlus: 0.6,
	domain.GradeC:     0.5,
	domain.GradeDPlus: 0.4,
	domain.GradeD:     0.3,
	domain.GradeF:     0.2,
}

// GradeToPoint maps a grade to its score points; anything unknown scores like F.
func GradeToPoint(g domain.Grade) int {
	if p, ok := gradePoints[g]; ok {
		return p
	}
	return gradePoints[domain.GradeF]
}

// GradeToChartValue maps a grade to its radar-chart radius fraction in (0,1].
func GradeToChartValue(g domain.Grade) float64 {
	if v, ok := gradeChartValues[g]; ok {
		return v
	}
	return gradeChartValues[domain.GradeF]
}

// The letter must stand alone: "Bad" or "Average" is not a grade.
var gradeTokenRe = regexp.MustCompile(`^[\s*"'(\[]*([A-Da-dFf])(\+?)(?:$|[^A-Za-z])`)

// ParseGrade reads the leading grade token of s, e.g. "B+ (좋음)" -> B+.
// The boolean is false when no valid grade is present.
func ParseGrade(s string) (domain.Grade, bool) {
	m := gradeTokenRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	g := domain.Grade(strings.ToUpper(m[1]) + m[2])
	if !g.Valid() {
		return "", false
	}
	return g, true
}

// gradeOr returns the parsed grade of s or def.
func gradeOr(s string, def domain.Grade) domain.Grade {
	if g, ok := ParseGrade(s); ok {
		return g
	}
	return def
}
