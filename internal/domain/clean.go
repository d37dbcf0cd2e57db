package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Header names of the coordinate columns.
const (
	ColumnLatitude  = "Latitude"
	ColumnLongitude = "Longitude"
)

// missingTokens are the cell values treated as "no value", matching the
// defaults spreadsheet and dataframe tools write for blanks.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// SwapCoordinateColumns returns a copy of header with the "Latitude" and
// "Longitude" labels exchanged. Other names are left alone, and a header
// containing only one of the two still has that one renamed.
func SwapCoordinateColumns(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		switch name {
		case ColumnLatitude:
			out[i] = ColumnLongitude
		case ColumnLongitude:
			out[i] = ColumnLatitude
		default:
			out[i] = name
		}
	}
	return out
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(cell string) bool {
	_, ok := missingTokens[strings.TrimSpace(cell)]
	return ok
}

// Clean turns a parsed table into a Dataset. When swap is set the coordinate
// headers are exchanged first. Rows with a missing coordinate or a point
// outside bounds are dropped and counted on the report. A missing column or a
// non-numeric coordinate yields a *LoadError.
func Clean(table Table, bounds Bounds, swap bool) (*Dataset, error) {
	header := table.Header
	if swap {
		header = SwapCoordinateColumns(header)
	}

	ds := &Dataset{
		Columns:  header,
		LoadedAt: clock.Now(),
	}

	// An empty file has neither header nor rows; there is nothing to check.
	if len(header) == 0 && len(table.Rows) == 0 {
		return ds, nil
	}

	lonIdx := columnIndex(header, ColumnLongitude)
	latIdx := columnIndex(header, ColumnLatitude)
	for _, c := range []struct {
		name string
		idx  int
	}{{ColumnLongitude, lonIdx}, {ColumnLatitude, latIdx}} {
		if c.idx < 0 {
			return nil, &LoadError{
				Path:  table.Path,
				Line:  1,
				Cause: fmt.Errorf("%w: %q", ErrMissingColumn, c.name),
			}
		}
	}

	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		ds.Report.RowsRead++

		lon, lonOK, err := parseCoordinate(cell(row.Values, lonIdx))
		if err != nil {
			return nil, invalidCoordinate(table.Path, row.Line, ColumnLongitude, err)
		}
		lat, latOK, err := parseCoordinate(cell(row.Values, latIdx))
		if err != nil {
			return nil, invalidCoordinate(table.Path, row.Line, ColumnLatitude, err)
		}

		if !lonOK || !latOK {
			ds.Report.DroppedMissing++
			continue
		}
		if !bounds.Contains(lon, lat) {
			ds.Report.DroppedOutOfBounds++
			continue
		}

		records = append(records, Record{
			Longitude: lon,
			Latitude:  lat,
			Line:      row.Line,
			Fields:    passthroughFields(header, row.Values, lonIdx, latIdx),
		})
	}

	ds.Records = records
	ds.Report.Kept = len(records)
	return ds, nil
}

// parseCoordinate returns the value and whether it is present. Missing
// tokens and NaN spellings count as absent; anything else unparsable is an error.
func parseCoordinate(raw string) (float64, bool, error) {
	if IsMissing(raw) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidCoordinate, raw)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}

func invalidCoordinate(path string, line int, column string, err error) *LoadError {
	return &LoadError{
		Path:  path,
		Line:  line,
		Cause: fmt.Errorf("column %s: %w", column, err),
	}
}

// columnIndex returns the first position of name in header, or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// cell returns values[i], or "" for short rows.
func cell(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func passthroughFields(header, values []string, lonIdx, latIdx int) map[string]string {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i == lonIdx || i == latIdx {
			continue
		}
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = cell(values, i)
	}
	return fields
}
