package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrRateLimited       = errors.New("rate limited")
	ErrUpstreamTimeout   = errors.New("upstream timeout")
	ErrUpstreamRateLimit = errors.New("upstream rate limit")
	ErrSchemaInvalid     = errors.New("schema invalid")
	ErrRenderFailed      = errors.New("결과를 표시할 수 없습니다")
	ErrInternal          = errors.New("internal error")
)

// Context is an alias so ports read the same across adapters.
type Context = context.Context

// EssayMetadata is the submitted essay and the student it belongs to.
// Content holds the raw essay text, paragraphs separated by line breaks.
type EssayMetadata struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Grade   string `json:"grade"`
	Class   string `json:"class"`
	Number  string `json:"number"`
	Name    string `json:"name"`
}

// Grade is one of the nine ordinal labels from A+ down to F.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeDPlus Grade = "D+"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Grades lists every valid grade from best to worst.
var Grades = []Grade{GradeAPlus, GradeA, GradeBPlus, GradeB, GradeCPlus, GradeC, GradeDPlus, GradeD, GradeF}

// Valid reports whether g is one of the nine enumerated grades.
func (g Grade) Valid() bool {
	for _, v := range Grades {
		if g == v {
			return true
		}
	}
	return false
}

// CategoryName identifies an evaluation category such as 논리성.
type CategoryName string

// CategoryAssessment is the extracted evaluation of one category.
// Invariant: Grade is always valid; absent input yields F.
type CategoryAssessment struct {
	Grade        Grade  `json:"grade"`
	Evaluation   string `json:"evaluation"`
	GoodPoints   string `json:"goodPoints"`
	Improvements string `json:"improvements"`
}

// TitleAssessment evaluates the submitted title.
type TitleAssessment struct {
	Current     string   `json:"current"`
	Grade       Grade    `json:"grade"`
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}

// SpellingCorrection is one "original → fixed (reason)" line.
type SpellingCorrection struct {
	Original string `json:"original"`
	Fixed    string `json:"fixed"`
	Reason   string `json:"reason"`
}

// ParagraphAssessment is the feedback for one numbered paragraph.
// Index is the number declared in the report and need not be contiguous.
type ParagraphAssessment struct {
	Index               int                  `json:"index"`
	Content             string               `json:"content"`
	Analysis            string               `json:"analysis"`
	GoodPoints          string               `json:"goodPoints"`
	Improvements        string               `json:"improvements"`
	Suggestions         []string             `json:"suggestions"`
	SpellingCorrections []SpellingCorrection `json:"spellingCorrections"`
}

// StructureAssessment holds the paragraph-structure proposal.
type StructureAssessment struct {
	Current  string `json:"current"`
	Improved string `json:"improved"`
	Actions  string `json:"actions"`
}

// Statistics are derived from the essay text, never from the report.
type Statistics struct {
	CharCount         int `json:"charCount"`
	SentenceCount     int `json:"sentenceCount"`
	ParagraphCount    int `json:"paragraphCount"`
	AvgSentenceLength int `json:"avgSentenceLength"`
}

// Point is a 2D coordinate in chart space (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ChartAxis is one spoke of the radar chart.
type ChartAxis struct {
	Category CategoryName `json:"category"`
	Grade    Grade        `json:"grade"`
	Angle    float64      `json:"angle"`
	Vertex   Point        `json:"vertex"`
	End      Point        `json:"end"`
	Label    Point        `json:"label"`
}

// ChartRing is one concentric reference polygon.
type ChartRing struct {
	Fraction float64 `json:"fraction"`
	Points   []Point `json:"points"`
}

// ChartGeometry is the format-agnostic radar chart.
// Polygon is closed: its last point equals its first.
type ChartGeometry struct {
	Center  float64     `json:"center"`
	Radius  float64     `json:"radius"`
	Axes    []ChartAxis `json:"axes"`
	Polygon []Point     `json:"polygon"`
	Rings   []ChartRing `json:"rings"`
}

// SVGPath renders the polygon as "M x,y L x,y ..." with two decimals.
// The path is closed by its repeated first vertex, not by "Z".
func (g ChartGeometry) SVGPath() string {
	var b strings.Builder
	for i, p := range g.Polygon {
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f,%.2f", p.X, p.Y)
			continue
		}
		fmt.Fprintf(&b, " L %.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}

// AnalysisReport is the validated result of one analysis request.
type AnalysisReport struct {
	Metadata        EssayMetadata                       `json:"metadata"`
	Title           TitleAssessment                     `json:"title"`
	Categories      map[CategoryName]CategoryAssessment `json:"categories"`
	Paragraphs      []ParagraphAssessment               `json:"paragraphs"`
	Structure       StructureAssessment                 `json:"structure"`
	TotalEvaluation string                              `json:"totalEvaluation"`
	Score           int                                 `json:"score"`
	Statistics      Statistics                          `json:"statistics"`
	Chart           ChartGeometry                       `json:"chart"`
}

// ParagraphSuggestion is one proposed paragraph with the reason for the split.
type ParagraphSuggestion struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// ParagraphSuggestions is the paragraph-suggestion response payload.
type ParagraphSuggestions struct {
	Paragraphs []ParagraphSuggestion `json:"paragraphs"`
}

// StoredReport is a persisted analysis.
type StoredReport struct {
	ID        string
	Report    AnalysisReport
	RawText   string
	CreatedAt time.Time
}

// ReportEvent is published after a report is stored.
type ReportEvent struct {
	ReportID       string                 `json:"report_id"`
	Score          int                    `json:"score"`
	Grades         map[CategoryName]Grade `json:"grades"`
	TitleGrade     Grade                  `json:"title_grade"`
	ParagraphCount int                    `json:"paragraph_count"`
	CreatedAt      time.Time              `json:"created_at"`
}

// Repositories (ports)

type ReportRepository interface {
	Save(ctx Context, r StoredReport) (string, error)
	Get(ctx Context, id string) (StoredReport, error)
}

// ReportPurger removes stored reports created before cutoff.
type ReportPurger interface {
	DeleteOlderThan(ctx Context, cutoff time.Time) (int64, error)
}

// ReportCache caches generated report text by key.
type ReportCache interface {
	Get(ctx Context, key string) (string, bool, error)
	Set(ctx Context, key, text string, ttl time.Duration) error
}

// ReportGenerator (port) produces the free-form evaluation report text.
type ReportGenerator interface {
	GenerateReport(ctx Context, essay EssayMetadata) (string, error)
}

// ParagraphSuggester (port) returns the raw paragraph-suggestion JSON.
type ParagraphSuggester interface {
	SuggestParagraphs(ctx Context, content string) (string, error)
}

// TextExtractor (port) converts an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx Context, fileName string, data []byte) (string, error)
}

// EventPublisher (port)

type EventPublisher interface {
	PublishReport(ctx Context, ev ReportEvent) error
}
