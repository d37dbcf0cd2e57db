//go:build integration

package integration_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/grow-sensor-map/internal/adapter/csvfile"
	"github.com/couchcryptid/grow-sensor-map/internal/adapter/figure"
	"github.com/couchcryptid/grow-sensor-map/internal/config"
	"github.com/couchcryptid/grow-sensor-map/internal/domain"
	"github.com/couchcryptid/grow-sensor-map/internal/observability"
	"github.com/couchcryptid/grow-sensor-map/internal/pipeline"
)

// sensorCSV mimics the published export: headers transposed, a blank cell,
// and a row far outside the UK.
const sensorCSV = "Serial,Latitude,Longitude,Type,SensorType\n" +
	"GS00001,-1.548567,53.799500,Grow,Soil\n" +
	"GS00002,-0.127758,51.507351,Grow,Air\n" +
	"GS00003,-3.188267,55.953251,Grow,Light\n" +
	"GS00004,,52.486244,Grow,Soil\n" +
	"GS00005,90.000000,200.000000,Grow,Air\n"

type fixture struct {
	dir     string
	csvPath string
	mapPath string
	outPath string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		csvPath: filepath.Join(dir, "GrowLocations.csv"),
		mapPath: filepath.Join(dir, "map7.png"),
		outPath: filepath.Join(dir, "sensor_map.png"),
	}
	require.NoError(t, os.WriteFile(f.csvPath, []byte(sensorCSV), 0o600))

	img := image.NewNRGBA(image.Rect(0, 0, 120, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.NRGBA{R: 170, G: 210, B: 170, A: 255})
		}
	}
	out, err := os.Create(f.mapPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, img))
	require.NoError(t, out.Close())
	return f
}

func buildPipeline(t *testing.T, f fixture, metrics *observability.Metrics) *pipeline.Pipeline {
	t.Helper()
	t.Setenv(config.ConfigEnv, "")
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	bounds, err := cfg.Bounds.Domain()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := csvfile.NewReader(logger, csvfile.WithDelimiter(cfg.Comma()))
	loader := pipeline.NewLoader(reader, bounds, cfg.SwapColumns, logger, metrics)
	renderer := figure.NewRenderer(bounds, cfg.FigureWidth, cfg.FigureHeight, logger)
	return pipeline.New(loader, renderer, figure.NewFileWriter(f.outPath, logger), logger, metrics)
}

// TestPipeline_EndToEnd runs the default configuration over a realistic file
// and checks the written figure and the exported counters.
func TestPipeline_EndToEnd(t *testing.T) {
	f := newFixture(t)
	metrics := observability.NewMetrics()

	require.NoError(t, buildPipeline(t, f, metrics).Run(context.Background(), f.csvPath, f.mapPath))

	out, err := os.Open(f.outPath)
	require.NoError(t, err)
	defer out.Close()
	cfg, err := png.DecodeConfig(out)
	require.NoError(t, err)
	assert.Equal(t, 1100, cfg.Width)
	assert.Equal(t, 1500, cfg.Height)

	assert.InDelta(t, 5.0, testutil.ToFloat64(metrics.RowsRead), 0)
	assert.InDelta(t, 3.0, testutil.ToFloat64(metrics.RowsKept), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(observability.ReasonMissing)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(observability.ReasonOutOfBounds)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.RunSuccess), 0)

	prom := filepath.Join(f.dir, "growmap.prom")
	require.NoError(t, metrics.WriteTextfile(prom))
	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `growmap_stage_duration_seconds_count{stage="render"} 1`))
}

// TestPipeline_MissingMap stops at the backdrop and writes nothing.
func TestPipeline_MissingMap(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.mapPath))

	err := buildPipeline(t, f, observability.NewMetrics()).Run(context.Background(), f.csvPath, f.mapPath)

	var renderErr *domain.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, domain.StageBackdrop, renderErr.Stage)
	assert.NoFileExists(t, f.outPath)
}
