package domain

import (
	"fmt"
	"math"
)

// Default bounding box: Great Britain, matching the extent of map7.png.
const (
	DefaultLongMin = -10.592
	DefaultLongMax = 1.6848
	DefaultLatMin  = 50.681
	DefaultLatMax  = 57.985
)

// Bounds is an axis-aligned longitude/latitude box with inclusive edges.
// Construct it with NewBounds; the zero value contains only (0, 0).
type Bounds struct {
	LongMin float64
	LongMax float64
	LatMin  float64
	LatMax  float64
}

// NewBounds validates the edges and returns the box.
// Requires LongMin < LongMax and LatMin < LatMax, all within WGS-84 ranges.
func NewBounds(longMin, longMax, latMin, latMax float64) (Bounds, error) {
	for _, v := range []float64{longMin, longMax, latMin, latMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Bounds{}, fmt.Errorf("bounds: non-finite edge %v", v)
		}
	}
	if longMin < -180 || longMax > 180 {
		return Bounds{}, fmt.Errorf("bounds: longitude range [%g, %g] outside [-180, 180]", longMin, longMax)
	}
	if latMin < -90 || latMax > 90 {
		return Bounds{}, fmt.Errorf("bounds: latitude range [%g, %g] outside [-90, 90]", latMin, latMax)
	}
	if longMin >= longMax {
		return Bounds{}, fmt.Errorf("bounds: long_min %g must be less than long_max %g", longMin, longMax)
	}
	if latMin >= latMax {
		return Bounds{}, fmt.Errorf("bounds: lat_min %g must be less than lat_max %g", latMin, latMax)
	}

	return Bounds{
		LongMin: longMin,
		LongMax: longMax,
		LatMin:  latMin,
		LatMax:  latMax,
	}, nil
}

// DefaultBounds returns the Great Britain box.
func DefaultBounds() Bounds {
	b, err := NewBounds(DefaultLongMin, DefaultLongMax, DefaultLatMin, DefaultLatMax)
	if err != nil {
		panic(err)
	}
	return b
}

// Contains reports whether the point lies inside the box, edges included.
// Non-finite coordinates are never contained.
func (b Bounds) Contains(lon, lat float64) bool {
	// Compared in degrees as given; NaN fails every comparison.
	return lon >= b.LongMin && lon <= b.LongMax &&
		lat >= b.LatMin && lat <= b.LatMax
}

// Width is the longitude span in degrees.
func (b Bounds) Width() float64 { return b.LongMax - b.LongMin }

// Height is the latitude span in degrees.
func (b Bounds) Height() float64 { return b.LatMax - b.LatMin }

func (b Bounds) String() string {
	return fmt.Sprintf("lon[%g, %g] lat[%g, %g]", b.LongMin, b.LongMax, b.LatMin, b.LatMax)
}
