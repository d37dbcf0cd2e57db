// Command validate checks a sensor CSV against the cleaning rules without
// drawing anything: it parses the file, confirms the coordinate headers,
// checks which header reading fits the bounding box, and counts the rows that
// would be plotted.
//
// Usage:
//
//	go run ./cmd/validate -data GrowLocations.csv [-swap=true] [-delimiter ,]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/couchcryptid/grow-sensor-map/internal/adapter/csvfile"
	"github.com/couchcryptid/grow-sensor-map/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type options struct {
	dataPath  string
	delimiter string
	swap      bool
}

func main() {
	var opts options
	fs := pflag.NewFlagSet("validate", pflag.ExitOnError)
	fs.StringVar(&opts.dataPath, "data", "GrowLocations.csv", "sensor CSV file to check")
	fs.StringVar(&opts.delimiter, "delimiter", ",", "field delimiter")
	fs.BoolVar(&opts.swap, "swap", true, "whether the Latitude/Longitude headers are swapped before cleaning")
	_ = fs.Parse(os.Args[1:])

	os.Exit(run(context.Background(), opts, os.Stdout))
}

func run(ctx context.Context, opts options, out io.Writer) int {
	comma, size := utf8.DecodeRuneInString(opts.delimiter)
	if size == 0 || size != len(opts.delimiter) {
		fmt.Fprintf(out, "FATAL: delimiter must be a single character, got %q\n", opts.delimiter)
		return 1
	}

	fmt.Fprintln(out, "=== Sensor Data Validation ===")
	fmt.Fprintln(out)

	bounds := domain.DefaultBounds()
	reader := csvfile.NewReader(slog.New(slog.NewTextHandler(io.Discard, nil)), csvfile.WithDelimiter(comma))

	table, err := reader.ReadTable(ctx, opts.dataPath)
	parse := &phase{name: "Phase 1: Parse (CSV structure)"}
	if err != nil {
		parse.errorf("%v", err)
	}

	phases := []*phase{parse}
	var ds *domain.Dataset
	if parse.passed() {
		phases = append(phases, validateColumns(table), validateOrientation(table, bounds, opts.swap))
		var cleanPhase *phase
		ds, cleanPhase = validateCoordinates(table, bounds, opts.swap)
		phases = append(phases, cleanPhase)
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	if ds != nil {
		r := ds.Report
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Rows: %d read, %d missing coordinates, %d outside %s, %d kept\n",
			r.RowsRead, r.DroppedMissing, r.DroppedOutOfBounds, bounds, r.Kept)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func validateColumns(table domain.Table) *phase {
	p := &phase{name: "Phase 2: Columns (coordinate headers)"}
	if len(table.Header) == 0 {
		p.errorf("file is empty")
		return p
	}
	for _, name := range []string{domain.ColumnLatitude, domain.ColumnLongitude} {
		found := false
		for _, h := range table.Header {
			if h == name {
				found = true
				break
			}
		}
		if !found {
			p.errorf("header %v lacks %q", table.Header, name)
		}
	}
	return p
}

// validateOrientation fails when the data fits the box better under the other
// header reading than the one configured.
func validateOrientation(table domain.Table, bounds domain.Bounds, swap bool) *phase {
	p := &phase{name: "Phase 3: Orientation (header swap)"}
	o := domain.DetectOrientation(table, bounds)
	if o.AsWritten+o.Swapped == 0 {
		return p
	}
	if o.SwapLikely() != swap {
		p.errorf("swap=%t but %d rows fit the box as written and %d when swapped", swap, o.AsWritten, o.Swapped)
	}
	return p
}

func validateCoordinates(table domain.Table, bounds domain.Bounds, swap bool) (*domain.Dataset, *phase) {
	p := &phase{name: "Phase 4: Coordinates (values and bounds)"}
	ds, err := domain.Clean(table, bounds, swap)
	if err != nil {
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) && loadErr.Line > 0 {
			p.errorf("line %d: %v", loadErr.Line, loadErr.Cause)
		} else {
			p.errorf("%v", err)
		}
		return nil, p
	}
	if ds.Len() == 0 {
		p.errorf("%v", domain.ErrNoRecords)
	}
	return ds, p
}
