// Package service holds the server-side view of one fitted model run:
// the prediction raster and the training data it was fitted on.
package service

import (
	"fmt"
	"io"

	"github.com/ecomapper/sdmap"
	"github.com/ecomapper/sdmap/occurrence"
	"github.com/ecomapper/sdmap/raster"
)

// MapSettings carries the render options the host configures.
type MapSettings struct {
	Band     int    `yaml:"band"`
	MaxBytes int    `yaml:"maxBytes"`
	Title    string `yaml:"title"`
}

// BandInfo describes one raster band for API listings.
type BandInfo struct {
	Index int     `json:"index" doc:"1-based band index"`
	Name  string  `json:"name" doc:"Band name"`
	Min   float64 `json:"min" doc:"Minimum cell value"`
	Max   float64 `json:"max" doc:"Maximum cell value"`
}

// ModelService serves map renders for one loaded model result.
type ModelService struct {
	raster   *raster.Raster
	obs      []occurrence.Observation
	settings MapSettings
}

// NewModelService creates a model service over already-loaded data.
func NewModelService(r *raster.Raster, obs []occurrence.Observation, settings MapSettings) *ModelService {
	if settings.Band == 0 {
		settings.Band = 1
	}
	return &ModelService{raster: r, obs: obs, settings: settings}
}

// TrainingData returns the model's training observations.
func (s *ModelService) TrainingData() []occurrence.Observation {
	return s.obs
}

// Settings returns the configured render options.
func (s *ModelService) Settings() MapSettings {
	return s.settings
}

// Bands lists the raster's bands with their value ranges.
func (s *ModelService) Bands() []BandInfo {
	infos := make([]BandInfo, 0, len(s.raster.Bands))
	for i := range s.raster.Bands {
		min, max := s.raster.Bands[i].Range()
		infos = append(infos, BandInfo{
			Index: i + 1,
			Name:  s.raster.Bands[i].Name,
			Min:   min,
			Max:   max,
		})
	}
	return infos
}

// BandCount returns the number of bands in the loaded raster.
func (s *ModelService) BandCount() int {
	return len(s.raster.Bands)
}

// RenderMap builds and writes the map for the given 1-based band.
// Zero selects the configured default band.
func (s *ModelService) RenderMap(w io.Writer, band int) error {
	if band == 0 {
		band = s.settings.Band
	}
	opts := []sdmap.Option{sdmap.WithBand(band)}
	if s.settings.MaxBytes > 0 {
		opts = append(opts, sdmap.WithMaxBytes(s.settings.MaxBytes))
	}
	if err := sdmap.MapPredictions(s, s.raster, w, opts...); err != nil {
		return fmt.Errorf("rendering map: %w", err)
	}
	return nil
}
