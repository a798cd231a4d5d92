package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecomapper/sdmap/internal/service"
)

// Settings is the host configuration file. All fields are optional;
// zero values fall back to the defaults below.
type Settings struct {
	// Raster is the prediction raster JSON, relative to the data dir.
	Raster string `yaml:"raster"`
	// Table is the training-data table in the DuckDB database.
	Table string `yaml:"table"`
	// Map carries the render options passed to the pipeline.
	Map service.MapSettings `yaml:"map"`
}

// DefaultSettings returns the settings used when no config file is given.
func DefaultSettings() Settings {
	return Settings{
		Raster: "raster.json",
		Table:  "occurrences",
		Map:    service.MapSettings{Band: 1, Title: "Predicted distribution"},
	}
}

// LoadSettings reads a YAML settings file, filling defaults for any
// field left unset.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if settings.Raster == "" {
		settings.Raster = "raster.json"
	}
	if settings.Table == "" {
		settings.Table = "occurrences"
	}
	return settings, nil
}
