package domain

import "time"

// Table is a parsed delimited file before any cleaning. Header holds the
// column names exactly as they appear in the file.
type Table struct {
	Path   string
	Header []string
	Rows   []Row
}

// Row is one data line of a Table. Line is the 1-based line number in the
// source file, used for diagnostics.
type Row struct {
	Line   int
	Values []string
}

// Record is one sensor observation after the header swap and cleaning.
type Record struct {
	Longitude float64
	Latitude  float64
	Line      int

	// Fields holds the remaining columns keyed by header name.
	Fields map[string]string
}

// CleanReport counts what happened to each row during cleaning.
type CleanReport struct {
	RowsRead           int
	DroppedMissing     int
	DroppedOutOfBounds int
	Kept               int
}

// Dataset is the in-memory collection of records that survived cleaning.
type Dataset struct {
	Columns  []string
	Records  []Record
	Report   CleanReport
	LoadedAt time.Time
}

// Len returns the number of records, treating a nil Dataset as empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Coordinates returns the longitudes and latitudes as parallel slices, in
// record order.
func (d *Dataset) Coordinates() (lons, lats []float64) {
	n := d.Len()
	lons = make([]float64, n)
	lats = make([]float64, n)
	for i := 0; i < n; i++ {
		lons[i] = d.Records[i].Longitude
		lats[i] = d.Records[i].Latitude
	}
	return lons, lats
}
