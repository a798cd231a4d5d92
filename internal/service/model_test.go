package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/ecomapper/sdmap/occurrence"
	"github.com/ecomapper/sdmap/raster"
)

func testModel() *ModelService {
	values := make([]float64, 16)
	for i := range values {
		values[i] = float64(i)
	}
	r := &raster.Raster{Bands: []raster.Band{
		{
			Name: "suitability", W: 4, H: 4, Values: values,
			Extent: orb.Bound{Min: orb.Point{5, 40}, Max: orb.Point{15, 50}},
			CRS:    raster.EPSG4326,
		},
	}}
	obs := []occurrence.Observation{
		{Lon: 6, Lat: 41, Category: occurrence.Presence},
	}
	return NewModelService(r, obs, MapSettings{Title: "test run"})
}

func TestBands(t *testing.T) {
	m := testModel()

	bands := m.Bands()
	if len(bands) != 1 {
		t.Fatalf("got %d bands, want 1", len(bands))
	}
	if bands[0].Index != 1 || bands[0].Name != "suitability" {
		t.Errorf("band = %+v", bands[0])
	}
	if bands[0].Min != 0 || bands[0].Max != 15 {
		t.Errorf("range = (%v, %v), want (0, 15)", bands[0].Min, bands[0].Max)
	}
}

func TestRenderMapDefaultBand(t *testing.T) {
	m := testModel()

	var buf bytes.Buffer
	if err := m.RenderMap(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "suitability") {
		t.Error("rendered map does not show the band")
	}
	if !strings.Contains(buf.String(), "presence data") {
		t.Error("rendered map does not show the training markers")
	}
}

func TestRenderMapInvalidBand(t *testing.T) {
	m := testModel()

	var buf bytes.Buffer
	if err := m.RenderMap(&buf, 9); err == nil {
		t.Fatal("expected error for out-of-range band")
	}
	if buf.Len() != 0 {
		t.Error("failed render wrote a partial document")
	}
}
