package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
	"github.com/couchcryptid/grow-sensor-map/internal/observability"
)

// TableReader parses a delimited file into a raw table.
type TableReader interface {
	ReadTable(ctx context.Context, path string) (domain.Table, error)
}

// SensorLoader implements DatasetLoader: it reads the CSV, corrects the
// swapped coordinate headers, and filters rows to the bounding box.
type SensorLoader struct {
	reader  TableReader
	bounds  domain.Bounds
	swap    bool
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a SensorLoader. swap controls the header correction.
func NewLoader(reader TableReader, bounds domain.Bounds, swap bool, logger *slog.Logger, metrics *observability.Metrics) *SensorLoader {
	return &SensorLoader{
		reader:  reader,
		bounds:  bounds,
		swap:    swap,
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns the cleaned dataset for path. An empty or header-only file
// yields an empty dataset and no error.
func (l *SensorLoader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	start := domain.Now()
	defer func() {
		l.metrics.StageDuration.WithLabelValues("load").Observe(domain.Since(start).Seconds())
	}()

	table, err := l.reader.ReadTable(ctx, path)
	if err != nil {
		return nil, err
	}
	l.logger.Info("data loaded successfully",
		"path", path,
		"rows", len(table.Rows),
		"columns", len(table.Header),
	)

	if o := domain.DetectOrientation(table, l.bounds); o.AsWritten+o.Swapped > 0 && o.SwapLikely() != l.swap {
		l.logger.Warn("coordinate headers look mislabelled for the swap setting",
			"path", path,
			"swap", l.swap,
			"rows_in_bounds_as_written", o.AsWritten,
			"rows_in_bounds_swapped", o.Swapped,
		)
	}

	ds, err := domain.Clean(table, l.bounds, l.swap)
	if err != nil {
		return nil, err
	}
	if l.swap {
		l.logger.Info("swapped latitude and longitude columns", "columns", ds.Columns)
	}

	report := ds.Report
	l.metrics.RowsRead.Add(float64(report.RowsRead))
	l.metrics.RowsDropped.WithLabelValues(observability.ReasonMissing).Add(float64(report.DroppedMissing))
	l.metrics.RowsDropped.WithLabelValues(observability.ReasonOutOfBounds).Add(float64(report.DroppedOutOfBounds))
	l.metrics.RowsKept.Add(float64(report.Kept))
	l.metrics.LastLoadTimestamp.Set(float64(ds.LoadedAt.Unix()))

	l.logger.Info("cleaned dataset",
		"path", path,
		"cleaned_rows", ds.Len(),
		"dropped_missing", report.DroppedMissing,
		"dropped_out_of_bounds", report.DroppedOutOfBounds,
		"bounds", l.bounds.String(),
		"loaded_at", ds.LoadedAt.Format(time.RFC3339),
	)
	return ds, nil
}
