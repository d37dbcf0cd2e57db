// Command genmock writes a synthetic sensor CSV shaped like the published
// GrowLocations export: Latitude and Longitude headers are transposed, a
// share of rows have blank coordinates, and a share sit far outside the UK.
// The output is deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/GrowLocations.csv -rows 500 -seed 7
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

var sensorTypes = []string{"Soil", "Air", "Light", "Humidity"}

type genOptions struct {
	rows        int
	seed        uint64
	missingRate float64
	outlierRate float64
}

// genStats counts what was written, per expected cleaning outcome.
type genStats struct {
	Rows     int
	Missing  int
	Outliers int
	Valid    int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fs := pflag.NewFlagSet("genmock", pflag.ExitOnError)
	out := fs.String("out", "", "output path for the CSV fixture")
	var opts genOptions
	fs.IntVar(&opts.rows, "rows", 500, "number of data rows")
	fs.Uint64Var(&opts.seed, "seed", 1, "random seed")
	fs.Float64Var(&opts.missingRate, "missing-rate", 0.05, "share of rows with a blank coordinate")
	fs.Float64Var(&opts.outlierRate, "outlier-rate", 0.05, "share of rows placed outside the UK box")
	_ = fs.Parse(os.Args[1:])

	if *out == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	stats, err := generate(f, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}

	log.Printf("wrote %s: %d rows (%d valid, %d missing, %d outside bounds)",
		*out, stats.Rows, stats.Valid, stats.Missing, stats.Outliers)
	return nil
}

// generate writes the fixture to w. The "Latitude" column carries longitudes
// and the "Longitude" column carries latitudes, as in the real export.
func generate(w io.Writer, opts genOptions) (genStats, error) {
	if opts.rows < 0 {
		return genStats{}, fmt.Errorf("rows must not be negative, got %d", opts.rows)
	}
	if opts.missingRate < 0 || opts.outlierRate < 0 || opts.missingRate+opts.outlierRate > 1 {
		return genStats{}, fmt.Errorf("rates must be non-negative and sum to at most 1")
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	bounds := domain.DefaultBounds()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Serial", domain.ColumnLatitude, domain.ColumnLongitude, "Type", "SensorType"}); err != nil {
		return genStats{}, err
	}

	var stats genStats
	for i := 0; i < opts.rows; i++ {
		lon := bounds.LongMin + rng.Float64()*bounds.Width()
		lat := bounds.LatMin + rng.Float64()*bounds.Height()
		lonCell, latCell := formatCoord(lon), formatCoord(lat)

		switch roll := rng.Float64(); {
		case roll < opts.missingRate:
			if rng.IntN(2) == 0 {
				lonCell = ""
			} else {
				latCell = ""
			}
			stats.Missing++
		case roll < opts.missingRate+opts.outlierRate:
			// Far outside any UK reading, swapped or not.
			lonCell = formatCoord(90 + rng.Float64()*80)
			latCell = formatCoord(-170 + rng.Float64()*10)
			stats.Outliers++
		default:
			stats.Valid++
		}

		row := []string{
			fmt.Sprintf("GS%05d", i+1),
			lonCell, // under the "Latitude" header
			latCell, // under the "Longitude" header
			"Grow",
			sensorTypes[rng.IntN(len(sensorTypes))],
		}
		if err := cw.Write(row); err != nil {
			return stats, err
		}
		stats.Rows++
	}

	cw.Flush()
	return stats, cw.Error()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
