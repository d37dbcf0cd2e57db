package figure

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

// Labels drawn on the figure.
const (
	Title       = "Grow Sensor Locations on UK Map"
	SeriesName  = "Sensor Locations"
	XAxisName   = "Longitude"
	YAxisName   = "Latitude"
	titlePadTop = 50
)

var gridStyle = chart.Style{
	StrokeColor:     drawing.Color{R: 160, G: 160, B: 160, A: 140},
	StrokeWidth:     1,
	StrokeDashArray: []float64{4, 4},
}

// Renderer draws sensor positions over a backdrop map whose extent is the
// bounding box.
type Renderer struct {
	bounds domain.Bounds
	width  int
	height int
	logger *slog.Logger
}

// NewRenderer creates a Renderer producing width x height pixel figures.
func NewRenderer(bounds domain.Bounds, width, height int, logger *slog.Logger) *Renderer {
	return &Renderer{
		bounds: bounds,
		width:  width,
		height: height,
		logger: logger,
	}
}

// Render loads the backdrop at imagePath and returns the finished figure.
// Errors are *domain.RenderError.
func (r *Renderer) Render(ctx context.Context, ds *domain.Dataset, imagePath string) (image.Image, error) {
	backdrop, err := LoadBackdrop(imagePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.RenderError{Path: imagePath, Stage: domain.StageChart, Cause: err}
	}

	overlay, plot, err := r.drawChart(ds)
	if err != nil {
		return nil, &domain.RenderError{Path: imagePath, Stage: domain.StageChart, Cause: err}
	}

	fig := compose(backdrop, overlay, plot)
	r.logger.Debug("figure rendered",
		"points", ds.Len(),
		"width", r.width,
		"height", r.height,
		"plot", plot.String(),
	)
	return fig, nil
}

// drawChart renders axes, grid, markers, title, and legend onto a transparent
// image and reports the plotting rectangle in pixels.
func (r *Renderer) drawChart(ds *domain.Dataset) (image.Image, image.Rectangle, error) {
	lons, lats := ds.Coordinates()

	var plot image.Rectangle
	capturePlot := func(_ chart.Renderer, cb chart.Box, _ chart.Style) {
		plot = image.Rect(cb.Left, cb.Top, cb.Right, cb.Bottom)
	}

	ch := chart.Chart{
		Title:  Title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			FillColor: drawing.ColorTransparent,
			Padding:   chart.Box{Top: titlePadTop, Left: 20, Right: 30, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: drawing.ColorTransparent},
		XAxis: chart.XAxis{
			Name:           XAxisName,
			Range:          &chart.ContinuousRange{Min: r.bounds.LongMin, Max: r.bounds.LongMax},
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           YAxisName,
			Range:          &chart.ContinuousRange{Min: r.bounds.LatMin, Max: r.bounds.LatMax},
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: []chart.Series{
			sensorSeries{name: SeriesName, xs: lons, ys: lats},
		},
	}
	ch.Elements = []chart.Renderable{capturePlot, chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("draw chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("decode chart: %w", err)
	}
	if plot.Empty() {
		return nil, image.Rectangle{}, fmt.Errorf("chart left no plotting area at %dx%d", r.width, r.height)
	}
	return img, plot, nil
}

// compose paints a white figure, stretches the backdrop across the plotting
// rectangle, and lays the chart overlay on top.
func compose(backdrop, overlay image.Image, plot image.Rectangle) *image.RGBA {
	fig := image.NewRGBA(overlay.Bounds())
	xdraw.Draw(fig, fig.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.BiLinear.Scale(fig, plot, backdrop, backdrop.Bounds(), xdraw.Over, nil)
	xdraw.Draw(fig, fig.Bounds(), overlay, overlay.Bounds().Min, xdraw.Over)
	return fig
}
