// Package sdmap renders an interactive web map for a fitted species
// distribution model: one colorized raster band of the model's
// prediction surface over togglable base tiles, with the training
// observations as marker layers and a continuous color legend.
//
// The model fitting, data assembly and covariate loading stages are
// external collaborators; sdmap consumes their already-materialized
// outputs and produces exactly one rendered document per call.
package sdmap

import (
	"fmt"
	"io"

	"github.com/ecomapper/sdmap/colorscale"
	"github.com/ecomapper/sdmap/mapdoc"
	"github.com/ecomapper/sdmap/occurrence"
	"github.com/ecomapper/sdmap/raster"
)

// ModelResult is the upstream model output: anything exposing the
// training-data table the model was fitted on.
type ModelResult interface {
	TrainingData() []occurrence.Observation
}

type options struct {
	which    int
	maxBytes int
	renderer mapdoc.Renderer
}

// Option adjusts how MapPredictions builds the map.
type Option func(*options)

// WithBand selects the 1-based raster band to display. Default 1.
func WithBand(which int) Option {
	return func(o *options) { o.which = which }
}

// WithMaxBytes caps the encoded overlay image size. Default
// mapdoc.DefaultMaxBytes.
func WithMaxBytes(n int) Option {
	return func(o *options) { o.maxBytes = n }
}

// WithRenderer swaps the emitting backend. Default is the HTML/Leaflet
// renderer.
func WithRenderer(r mapdoc.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// MapPredictions builds and emits the map for one band of the
// prediction raster. The pipeline runs strictly forward: band
// selection, Web Mercator reprojection, color-scale derivation, map
// composition, then the single render to w. Any stage failure aborts
// the call with no partial document emitted.
func MapPredictions(result ModelResult, r *raster.Raster, w io.Writer, opts ...Option) error {
	o := options{
		which:    1,
		maxBytes: mapdoc.DefaultMaxBytes,
		renderer: mapdoc.NewHTMLRenderer(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	band, err := r.Band(o.which)
	if err != nil {
		return err
	}
	projected, err := raster.ToWebMercator(band)
	if err != nil {
		return err
	}

	min, max := projected.Range()
	scale := colorscale.New(min, max)

	doc, err := mapdoc.Compose(projected, scale, result.TrainingData(), mapdoc.Config{MaxBytes: o.maxBytes})
	if err != nil {
		return err
	}
	if err := o.renderer.Render(w, doc); err != nil {
		return fmt.Errorf("emitting map for band %q: %w", band.Name, err)
	}
	return nil
}
