package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/grow-sensor-map/internal/adapter/csvfile"
	"github.com/couchcryptid/grow-sensor-map/internal/adapter/figure"
	"github.com/couchcryptid/grow-sensor-map/internal/adapter/window"
	"github.com/couchcryptid/grow-sensor-map/internal/config"
	"github.com/couchcryptid/grow-sensor-map/internal/observability"
	"github.com/couchcryptid/grow-sensor-map/internal/pipeline"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growmap",
		Short: "Plot grow-sensor locations over a map of the UK",
		Long: "growmap reads sensor positions from a CSV file, corrects its swapped\n" +
			"Latitude/Longitude headers, drops rows outside Great Britain, and\n" +
			"draws the rest over a backdrop map.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String("data", "GrowLocations.csv", "sensor CSV file")
	f.String("map", "map7.png", "backdrop map image")
	f.String("output", "sensor_map.png", "PNG written by the file presenter")
	f.String("presenter", config.PresenterWindow, "where the figure goes: window or file")
	f.Bool("progress", false, "show a progress bar while reading the CSV")
	f.Bool("swap", true, "swap the Latitude and Longitude headers before cleaning")

	return cmd
}

// run wires the pipeline from cfg and executes it once. Diagnostics, including
// the final failure, go to stderr through the configured logger.
func run(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	logger := observability.NewLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if err := runPipeline(ctx, cfg, stderr, logger); err != nil {
		logFailure(logger, err)
		return &reportedError{err: err}
	}
	return nil
}

func runPipeline(ctx context.Context, cfg *config.Config, stderr io.Writer, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	bounds, err := cfg.Bounds.Domain()
	if err != nil {
		return fmt.Errorf("bounds: %w", err)
	}

	opts := []csvfile.Option{csvfile.WithDelimiter(cfg.Comma())}
	if cfg.Progress {
		opts = append(opts, csvfile.WithProgress(progressWriter(stderr)))
	}
	reader := csvfile.NewReader(logger, opts...)

	loader := pipeline.NewLoader(reader, bounds, cfg.SwapColumns, logger, metrics)
	renderer := figure.NewRenderer(bounds, cfg.FigureWidth, cfg.FigureHeight, logger)
	p := pipeline.New(loader, renderer, newPresenter(cfg, logger), logger, metrics)

	runErr := p.Run(ctx, cfg.DataPath, cfg.MapPath)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}
	return runErr
}

func newPresenter(cfg *config.Config, logger *slog.Logger) pipeline.Presenter {
	if cfg.Presenter == config.PresenterFile {
		return figure.NewFileWriter(cfg.OutputPath, logger)
	}
	return window.NewPresenter(figure.Title, logger)
}

// progressWriter renders ANSI escapes portably when writing to the terminal.
func progressWriter(stderr io.Writer) io.Writer {
	if stderr == os.Stderr {
		return ansi.NewAnsiStderr()
	}
	return stderr
}
