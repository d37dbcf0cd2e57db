package window

import (
	"context"
	"image"
	"log/slog"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

const appID = "com.couchcryptid.growmap"

// Presenter shows the figure in a desktop window and blocks until the window
// is closed or the context is cancelled.
type Presenter struct {
	title  string
	logger *slog.Logger
}

// NewPresenter creates a window Presenter with the given window title.
func NewPresenter(title string, logger *slog.Logger) *Presenter {
	return &Presenter{title: title, logger: logger}
}

// Present opens the window. Without a display backend it returns a
// *domain.RenderError wrapping domain.ErrNoDisplay.
func (p *Presenter) Present(ctx context.Context, img image.Image) error {
	if !displayAvailable(runtime.GOOS, os.LookupEnv) {
		return &domain.RenderError{Stage: domain.StageDisplay, Cause: domain.ErrNoDisplay}
	}

	a := app.NewWithID(appID)
	w := a.NewWindow(p.title)

	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain
	pic.ScaleMode = canvas.ImageScaleSmooth
	w.SetContent(pic)
	w.Resize(windowSize(img.Bounds()))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	p.logger.Info("showing figure", "title", p.title)
	w.ShowAndRun()
	p.logger.Info("window closed")

	return ctx.Err()
}

// windowSize halves large figures so the window fits a typical screen; the
// image keeps its aspect ratio inside.
func windowSize(b image.Rectangle) fyne.Size {
	w, h := float32(b.Dx()), float32(b.Dy())
	if h > 900 {
		w, h = w/2, h/2
	}
	return fyne.NewSize(w, h)
}
