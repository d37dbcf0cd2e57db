// Package domain models grow sensor geolocation data.
//
// # Data Source
//
// Sensor positions come from a delimited export, GrowLocations.csv, with one
// row per sensor and a header row. Only two columns are read by this package;
// every other column is carried through on [Record.Fields] untouched.
//
// # Known Defects
//
// Header transposition:
//
//	The export labels its coordinate columns the wrong way round. The column
//	named "Latitude" holds longitudes and the column named "Longitude" holds
//	latitudes. For UK sensors the header "Latitude" column reads roughly
//	-8..2 and the "Longitude" column roughly 50..58.
//	[SwapCoordinateColumns] fixes this by renaming the headers, never by
//	moving cell values. [DetectOrientation] reports which reading fits the
//	bounding box, for files that may already be fixed.
//
// Missing values:
//
//	Empty cells and the usual spreadsheet NA tokens ("NA", "N/A", "NaN",
//	"NULL", "#N/A", ...) mark a coordinate as missing. See [IsMissing].
//
// # Bounding Box
//
// [Bounds] is the valid region and also the geographic extent of the map
// backdrop. Both edges are inclusive. The default box covers Great Britain:
//
//	longitude  -10.592 .. 1.6848
//	latitude    50.681 .. 57.985
package domain
