package pipeline

import (
	"context"
	"image"
	"log/slog"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
	"github.com/couchcryptid/grow-sensor-map/internal/observability"
)

// DatasetLoader produces the cleaned dataset for a CSV path.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*domain.Dataset, error)
}

// Renderer draws the dataset over the backdrop image at imagePath.
type Renderer interface {
	Render(ctx context.Context, ds *domain.Dataset, imagePath string) (image.Image, error)
}

// Presenter shows or stores the finished figure. It blocks until done.
type Presenter interface {
	Present(ctx context.Context, img image.Image) error
}

// Pipeline runs load, render, and present in order for one figure.
type Pipeline struct {
	loader    DatasetLoader
	renderer  Renderer
	presenter Presenter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(l DatasetLoader, r Renderer, p Presenter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:    l,
		renderer:  r,
		presenter: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run loads dataPath, renders it over mapPath, and presents the result.
// A dataset left empty by cleaning stops the run with a *domain.LoadError
// wrapping domain.ErrNoRecords; nothing is rendered in that case. The context
// is checked between stages.
func (p *Pipeline) Run(ctx context.Context, dataPath, mapPath string) error {
	p.metrics.RunSuccess.Set(0)
	p.logger.Info("pipeline started", "data", dataPath, "map", mapPath)

	ds, err := p.loader.Load(ctx, dataPath)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return &domain.LoadError{Path: dataPath, Cause: domain.ErrNoRecords}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := domain.Now()
	img, err := p.renderer.Render(ctx, ds, mapPath)
	p.metrics.StageDuration.WithLabelValues("render").Observe(domain.Since(start).Seconds())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start = domain.Now()
	err = p.presenter.Present(ctx, img)
	p.metrics.StageDuration.WithLabelValues("present").Observe(domain.Since(start).Seconds())
	if err != nil {
		return err
	}

	p.metrics.RunSuccess.Set(1)
	p.logger.Info("pipeline finished", "plotted", ds.Len())
	return nil
}
