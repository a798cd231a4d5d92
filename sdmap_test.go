package sdmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/ecomapper/sdmap/occurrence"
	"github.com/ecomapper/sdmap/raster"
)

type fakeResult struct {
	obs []occurrence.Observation
}

func (f fakeResult) TrainingData() []occurrence.Observation { return f.obs }

func testRaster(names ...string) *raster.Raster {
	r := &raster.Raster{}
	for _, name := range names {
		values := make([]float64, 16)
		for i := range values {
			values[i] = float64(i)
		}
		r.Bands = append(r.Bands, raster.Band{
			Name:   name,
			W:      4,
			H:      4,
			Values: values,
			Extent: orb.Bound{Min: orb.Point{5, 40}, Max: orb.Point{15, 50}},
			CRS:    raster.EPSG4326,
		})
	}
	return r
}

func TestMapPredictionsSecondBand(t *testing.T) {
	result := fakeResult{obs: []occurrence.Observation{
		{Lon: 6, Lat: 41, Category: occurrence.Presence},
		{Lon: 7, Lat: 42, Category: occurrence.Presence},
		{Lon: 8, Lat: 43, Category: occurrence.Presence},
		{Lon: 9, Lat: 44, Category: occurrence.Presence},
		{Lon: 10, Lat: 45, Category: occurrence.Background},
		{Lon: 11, Lat: 46, Category: occurrence.Background},
	}}
	r := testRaster("current climate", "future climate")

	var buf bytes.Buffer
	if err := MapPredictions(result, r, &buf, WithBand(2)); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{
		"future climate",
		"presence data",
		"background data",
		"OpenStreetMap",
		"Esri.WorldImagery",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("map missing %q", want)
		}
	}
	if strings.Contains(html, "absence data") {
		t.Error("map has an absence group despite zero absence rows")
	}
}

func TestMapPredictionsDefaultBand(t *testing.T) {
	r := testRaster("only band")

	var buf bytes.Buffer
	if err := MapPredictions(fakeResult{}, r, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "only band") {
		t.Error("map does not show the default band")
	}
}

func TestMapPredictionsInvalidBandEmitsNothing(t *testing.T) {
	r := testRaster("a", "b", "c")

	var buf bytes.Buffer
	err := MapPredictions(fakeResult{}, r, &buf, WithBand(5))
	var idxErr *raster.InvalidIndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("got %v, want an InvalidIndexError", err)
	}
	if buf.Len() != 0 {
		t.Error("a failed call emitted a partial document")
	}
}

func TestMapPredictionsMissingCRS(t *testing.T) {
	r := testRaster("a")
	r.Bands[0].CRS = ""

	var buf bytes.Buffer
	err := MapPredictions(fakeResult{}, r, &buf)
	var projErr *raster.ProjectionError
	if !errors.As(err, &projErr) {
		t.Fatalf("got %v, want a ProjectionError", err)
	}
	if buf.Len() != 0 {
		t.Error("a failed call emitted a partial document")
	}
}

func TestMapPredictionsTightBudget(t *testing.T) {
	r := testRaster("a")

	// A small budget shrinks the overlay instead of failing.
	var buf bytes.Buffer
	if err := MapPredictions(fakeResult{}, r, &buf, WithMaxBytes(2_000)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("nothing emitted")
	}
}
