// Package mapdoc assembles the final interactive map document: base
// tiles, the colorized raster overlay, observation marker groups, a
// legend and a layer control. Assembly is pure; a Renderer performs
// the one emitting side effect.
package mapdoc

import (
	"fmt"

	"github.com/ecomapper/sdmap/colorscale"
	"github.com/ecomapper/sdmap/occurrence"
	"github.com/ecomapper/sdmap/raster"
)

// TileLayer is a togglable base tile layer. Base layers are mutually
// exclusive: only one is visible at a time.
type TileLayer struct {
	Name        string
	URLTemplate string
	Attribution string
}

var (
	OpenStreetMap = TileLayer{
		Name:        "OpenStreetMap",
		URLTemplate: "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
	}
	EsriWorldImagery = TileLayer{
		Name:        "Esri.WorldImagery",
		URLTemplate: "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Tiles &copy; Esri",
	}
)

// Marker styling shared by all category groups. Fill colors come from
// a fixed 3-entry categorical palette; border and radius are uniform.
const (
	MarkerRadius       = 5
	MarkerBorderColor  = "#ffffff"
	MarkerBorderWeight = 1
	MarkerFillOpacity  = 0.8
)

var categoryFill = map[occurrence.Category]string{
	occurrence.Background: "#969696",
	occurrence.Absence:    "#d7301f",
	occurrence.Presence:   "#1a9850",
}

// MarkerGroup is one togglable overlay of filled circle markers.
type MarkerGroup struct {
	Name      string
	FillColor string
	Points    []occurrence.Observation
}

// Legend pairs the color-scale entries with the band name they describe.
type Legend struct {
	Title   string
	Entries []colorscale.LegendEntry
}

// LayerControl lists every layer the map lets the user show or hide.
type LayerControl struct {
	BaseLayers []string
	Overlays   []string
}

// Document is the fully assembled map, built once per invocation and
// immutable afterwards.
type Document struct {
	BaseLayers []TileLayer
	Overlay    *ImageOverlay
	Markers    []MarkerGroup
	Legend     Legend
	Control    LayerControl
}

// Config carries the composer's one resource constraint.
type Config struct {
	// MaxBytes caps the encoded size of the raster overlay image.
	// Zero selects DefaultMaxBytes.
	MaxBytes int
}

// DefaultMaxBytes is the default overlay image byte budget.
const DefaultMaxBytes = 4_200_000

// Compose assembles the document from a reprojected band, its color
// scale and the model's training observations. The band must already
// be in Web Mercator so the overlay aligns with the base tiles.
func Compose(band *raster.Band, scale *colorscale.Scale, obs []occurrence.Observation, cfg Config) (*Document, error) {
	if band.CRS != raster.EPSG3857 {
		return nil, fmt.Errorf("composing map: band %q is in %s, want %s", band.Name, band.CRS, raster.EPSG3857)
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	overlay, err := NewImageOverlay(band, scale, maxBytes)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		BaseLayers: []TileLayer{OpenStreetMap, EsriWorldImagery},
		Overlay:    overlay,
		Legend:     Legend{Title: band.Name, Entries: scale.Legend()},
	}
	for _, g := range occurrence.Partition(obs) {
		doc.Markers = append(doc.Markers, MarkerGroup{
			Name:      string(g.Category) + " data",
			FillColor: categoryFill[g.Category],
			Points:    g.Points,
		})
	}

	doc.Control.BaseLayers = []string{OpenStreetMap.Name, EsriWorldImagery.Name}
	doc.Control.Overlays = append(doc.Control.Overlays, overlay.Name)
	for _, m := range doc.Markers {
		doc.Control.Overlays = append(doc.Control.Overlays, m.Name)
	}
	return doc, nil
}
