package figure

import (
	"fmt"
	"image"
	"os"

	// Decoders for the backdrop formats image.Decode understands.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

// LoadBackdrop decodes the map image at path. Failures come back as a
// *domain.RenderError for the backdrop stage.
func LoadBackdrop(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.RenderError{Path: path, Stage: domain.StageBackdrop, Cause: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &domain.RenderError{
			Path:  path,
			Stage: domain.StageBackdrop,
			Cause: fmt.Errorf("decode image: %w", err),
		}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, &domain.RenderError{
			Path:  path,
			Stage: domain.StageBackdrop,
			Cause: fmt.Errorf("decode %s image: empty bounds %v", format, b),
		}
	}
	return img, nil
}
