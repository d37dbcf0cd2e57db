package window

import (
	"context"
	"image"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDisplayAvailable(t *testing.T) {
	tests := []struct {
		name string
		goos string
		env  map[string]string
		want bool
	}{
		{"linux x11", "linux", map[string]string{"DISPLAY": ":0"}, true},
		{"linux wayland", "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, true},
		{"linux headless", "linux", nil, false},
		{"linux empty display", "linux", map[string]string{"DISPLAY": ""}, false},
		{"freebsd headless", "freebsd", nil, false},
		{"darwin", "darwin", nil, true},
		{"windows", "windows", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayAvailable(tt.goos, envOf(tt.env)))
		})
	}
}

func TestPresenter_Headless(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("headless detection only applies to X11/Wayland platforms")
	}
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	p := NewPresenter("Grow Sensor Locations on UK Map", slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := p.Present(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)))

	var renderErr *domain.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, domain.StageDisplay, renderErr.Stage)
	assert.ErrorIs(t, err, domain.ErrNoDisplay)
}

func TestWindowSize(t *testing.T) {
	assert.Equal(t, fyne.NewSize(550, 750), windowSize(image.Rect(0, 0, 1100, 1500)))
	assert.Equal(t, fyne.NewSize(640, 480), windowSize(image.Rect(0, 0, 640, 480)))
}
