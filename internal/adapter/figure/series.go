package figure

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Marker appearance: a translucent blue disc with a thin black edge.
var (
	markerFill   = drawing.Color{R: 0, G: 0, B: 255, A: 128}
	markerEdge   = drawing.ColorBlack
	markerRadius = 7.0
	markerStroke = 0.5
)

// sensorSeries plots one marker per sensor. Unlike chart.ContinuousSeries it
// never joins points with a line and accepts an empty set of points.
type sensorSeries struct {
	name string
	xs   []float64
	ys   []float64
}

var (
	_ chart.Series         = sensorSeries{}
	_ chart.ValuesProvider = sensorSeries{}
)

func (s sensorSeries) GetName() string { return s.name }

func (s sensorSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

// GetStyle drives the legend swatch.
func (s sensorSeries) GetStyle() chart.Style {
	return chart.Style{
		StrokeColor: markerFill,
		StrokeWidth: markerRadius,
		FillColor:   markerFill,
	}
}

func (s sensorSeries) Len() int { return len(s.xs) }

func (s sensorSeries) GetValues(i int) (float64, float64) { return s.xs[i], s.ys[i] }

func (s sensorSeries) Validate() error {
	if len(s.xs) != len(s.ys) {
		return fmt.Errorf("series %q: %d longitudes but %d latitudes", s.name, len(s.xs), len(s.ys))
	}
	return nil
}

func (s sensorSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	r.SetFillColor(markerFill)
	r.SetStrokeColor(markerEdge)
	r.SetStrokeWidth(markerStroke)
	r.SetStrokeDashArray(nil)

	for i := range s.xs {
		x := canvasBox.Left + xrange.Translate(s.xs[i])
		y := canvasBox.Bottom - yrange.Translate(s.ys[i])
		r.Circle(markerRadius, x, y)
		r.FillStroke()
	}
}
