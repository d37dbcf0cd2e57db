package figure

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

// FileWriter presents the figure by writing it to a PNG file.
type FileWriter struct {
	path   string
	logger *slog.Logger
}

// NewFileWriter creates a FileWriter targeting path.
func NewFileWriter(path string, logger *slog.Logger) *FileWriter {
	return &FileWriter{path: path, logger: logger}
}

// Present encodes img as PNG. A partially written file is removed on failure.
func (w *FileWriter) Present(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return w.fail(err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return w.fail(err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(w.path)
		return w.fail(fmt.Errorf("encode png: %w", err))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(w.path)
		return w.fail(err)
	}

	b := img.Bounds()
	w.logger.Info("figure written", "path", w.path, "width", b.Dx(), "height", b.Dy())
	return nil
}

func (w *FileWriter) fail(err error) error {
	return &domain.RenderError{Path: w.path, Stage: domain.StageOutput, Cause: err}
}
