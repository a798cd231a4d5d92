// Package rasterio loads materialized prediction rasters for the
// hosting server. The map core itself does no raster I/O; decoding the
// pipeline's JSON export is the host's job.
package rasterio

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"

	"github.com/ecomapper/sdmap/raster"
)

type rasterFile struct {
	CRS string `json:"crs"`
	// Extent is [minLon, minLat, maxLon, maxLat].
	Extent [4]float64 `json:"extent"`
	// NoData cells carry this sentinel; JSON has no NaN.
	NoData *float64   `json:"nodata,omitempty"`
	Bands  []bandFile `json:"bands"`
}

type bandFile struct {
	Name   string    `json:"name"`
	W      int       `json:"w"`
	H      int       `json:"h"`
	Values []float64 `json:"values"`
}

// Load reads a prediction raster from the pipeline's JSON export.
func Load(path string) (*raster.Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading raster file: %w", err)
	}

	var rf rasterFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing raster file %s: %w", path, err)
	}
	if len(rf.Bands) == 0 {
		return nil, fmt.Errorf("raster file %s has no bands", path)
	}

	extent := orb.Bound{
		Min: orb.Point{rf.Extent[0], rf.Extent[1]},
		Max: orb.Point{rf.Extent[2], rf.Extent[3]},
	}

	r := &raster.Raster{}
	for _, bf := range rf.Bands {
		if len(bf.Values) != bf.W*bf.H {
			return nil, fmt.Errorf("band %q has %d values for a %dx%d grid", bf.Name, len(bf.Values), bf.W, bf.H)
		}
		values := append([]float64(nil), bf.Values...)
		if rf.NoData != nil {
			for i, v := range values {
				if v == *rf.NoData {
					values[i] = math.NaN()
				}
			}
		}
		r.Bands = append(r.Bands, raster.Band{
			Name:   bf.Name,
			W:      bf.W,
			H:      bf.H,
			Values: values,
			Extent: extent,
			CRS:    rf.CRS,
		})
	}
	return r, nil
}
