package domain

// Orientation counts how many rows of a raw table land inside a bounding box
// when the coordinate headers are read as written and when they are swapped.
type Orientation struct {
	AsWritten int
	Swapped   int
}

// SwapLikely reports whether the swapped reading explains strictly more rows.
func (o Orientation) SwapLikely() bool { return o.Swapped > o.AsWritten }

// DetectOrientation scores both header readings of table against bounds.
// Rows with a missing or non-numeric coordinate are ignored. A table lacking
// either coordinate column scores zero both ways.
func DetectOrientation(table Table, bounds Bounds) Orientation {
	var o Orientation
	latIdx := columnIndex(table.Header, ColumnLatitude)
	lonIdx := columnIndex(table.Header, ColumnLongitude)
	if latIdx < 0 || lonIdx < 0 {
		return o
	}

	for _, row := range table.Rows {
		lat, latOK, latErr := parseCoordinate(cell(row.Values, latIdx))
		lon, lonOK, lonErr := parseCoordinate(cell(row.Values, lonIdx))
		if latErr != nil || lonErr != nil || !latOK || !lonOK {
			continue
		}
		if bounds.Contains(lon, lat) {
			o.AsWritten++
		}
		if bounds.Contains(lat, lon) {
			o.Swapped++
		}
	}
	return o
}
