package analysis

import (
	"math"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// Default chart frame used when the report embeds its geometry.
const (
	ChartCenter      = 200.0
	ChartRadius      = 150.0
	chartLabelOffset = 50.0
	chartStartAngle  = -90.0
)

// RingFractions are the concentric reference levels.
var RingFractions = []float64{0.2, 0.4, 0.6, 0.8, 1.0}

// ChartEntry is one category plotted on the radar chart.
type ChartEntry struct {
	Category domain.CategoryName
	Grade    domain.Grade
}

// BuildChart places len(entries) axes evenly around center, the first pointing up
// (-90°) and advancing clockwise on screen. Each vertex sits at
// radius·GradeToChartValue(grade) along its axis.
func BuildChart(entries []ChartEntry, center, radius float64) domain.ChartGeometry {
	g := domain.ChartGeometry{Center: center, Radius: radius, Axes: []domain.ChartAxis{}, Polygon: []domain.Point{}, Rings: []domain.ChartRing{}}
	n := len(entries)
	if n == 0 {
		return g
	}
	step := 360.0 / float64(n)
	for i, e := range entries {
		angle := chartStartAngle + step*float64(i)
		g.Axes = append(g.Axes, domain.ChartAxis{
			Category: e.Category,
			Grade:    e.Grade,
			Angle:    angle,
			Vertex:   polar(center, radius*GradeToChartValue(e.Grade), angle),
			End:      polar(center, radius, angle),
			Label:    polar(center, radius+chartLabelOffset, angle),
		})
	}
	for _, a := range g.Axes {
		g.Polygon = append(g.Polygon, a.Vertex)
	}
	g.Polygon = append(g.Polygon, g.Polygon[0])
	for _, f := range RingFractions {
		ring := domain.ChartRing{Fraction: f, Points: make([]domain.Point, 0, n)}
		for _, a := range g.Axes {
			ring.Points = append(ring.Points, polar(center, radius*f, a.Angle))
		}
		g.Rings = append(g.Rings, ring)
	}
	return g
}

// PolygonPath renders points as an SVG path, e.g. "M 200.00,95.00 L 305.00,200.00 ...".
func PolygonPath(points []domain.Point) string {
	return domain.ChartGeometry{Polygon: points}.SVGPath()
}

func polar(center, r, angleDeg float64) domain.Point {
	rad := angleDeg * math.Pi / 180
	return domain.Point{X: center + r*math.Cos(rad), Y: center + r*math.Sin(rad)}
}
