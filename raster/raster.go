// Package raster holds in-memory raster bands and their Web Mercator
// reprojection. Rasters arrive already materialized by the upstream
// pipeline; this package does no file I/O.
package raster

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Supported coordinate reference systems.
const (
	EPSG4326 = "EPSG:4326"
	EPSG3857 = "EPSG:3857"
)

// Band is a single grid of cell values with its spatial frame.
// Values are stored row-major, north-up (row 0 is the top row).
// NaN marks no-data cells.
type Band struct {
	Name   string
	W, H   int
	Values []float64
	Extent orb.Bound
	CRS    string
}

// Raster is an ordered collection of bands sharing one spatial frame.
type Raster struct {
	Bands []Band
}

// InvalidIndexError reports a band index outside [1, len(bands)].
type InvalidIndexError struct {
	Which int
	Count int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("band index %d out of range: raster has %d band(s)", e.Which, e.Count)
}

// Band returns the band at the 1-based index which.
func (r *Raster) Band(which int) (*Band, error) {
	if which < 1 || which > len(r.Bands) {
		return nil, &InvalidIndexError{Which: which, Count: len(r.Bands)}
	}
	return &r.Bands[which-1], nil
}

// At returns the cell value at column x, row y.
func (b *Band) At(x, y int) float64 {
	return b.Values[y*b.W+x]
}

// Range returns the minimum and maximum of the band's legitimate cells.
// No-data cells are skipped. A band with no legitimate cells returns
// (NaN, NaN).
func (b *Band) Range() (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, v := range b.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max
}
