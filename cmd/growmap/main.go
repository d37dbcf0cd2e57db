// growmap plots grow-sensor locations from a CSV over a map of the UK.
//
// Usage:
//
//	growmap [--data=GrowLocations.csv] [--map=map7.png] [--presenter=window|file] [--output=sensor_map.png]
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			// Config failed before the configured logger existed.
			logFailure(slog.Default(), err)
		}
		os.Exit(1)
	}
}

// reportedError marks a failure already logged by run.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// logFailure reports err once, with the fields of the typed error it wraps.
func logFailure(logger *slog.Logger, err error) {
	var loadErr *domain.LoadError
	var renderErr *domain.RenderError
	switch {
	case errors.As(err, &loadErr):
		logger.Error("failed to load sensor data", "path", loadErr.Path, "line", loadErr.Line, "error", loadErr.Cause)
	case errors.As(err, &renderErr):
		logger.Error("failed to render figure", "stage", renderErr.Stage, "path", renderErr.Path, "error", renderErr.Cause)
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted")
	default:
		logger.Error("growmap failed", "error", err)
	}
}
