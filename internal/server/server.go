// Package server hosts the map renderer behind an HTTP surface: the
// rendered map document, a small JSON API and the viewer page.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/ecomapper/sdmap/internal/api"
	"github.com/ecomapper/sdmap/internal/api/viewer"
	"github.com/ecomapper/sdmap/internal/db"
	"github.com/ecomapper/sdmap/internal/rasterio"
	"github.com/ecomapper/sdmap/internal/service"
	"github.com/ecomapper/sdmap/internal/templates"
	"github.com/ecomapper/sdmap/occurrence"
	"github.com/ecomapper/sdmap/raster"
)

// Config holds the server configuration.
type Config struct {
	Host       string
	Port       string
	DataDir    string
	ConfigFile string
}

// Server is the sdmap HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	model    *service.ModelService
	renderer *templates.Renderer
}

// LoadModel loads the prediction raster and training data the config
// points at. The render subcommand uses it without a server.
func LoadModel(cfg Config) (*service.ModelService, error) {
	settings, err := LoadSettings(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	r, err := rasterio.Load(filepath.Join(cfg.DataDir, settings.Raster))
	if err != nil {
		return nil, fmt.Errorf("loading prediction raster: %w", err)
	}

	obs := loadObservations(cfg.DataDir, settings.Table)
	return service.NewModelService(r, obs, settings.Map), nil
}

// loadObservations reads the training table. A host without a
// materialized table still serves the raster, just without markers.
func loadObservations(dataDir, table string) []occurrence.Observation {
	conn, err := db.Get(db.Config{DataDir: dataDir, DBName: "sdmap"})
	if err != nil {
		log.Printf("training database unavailable: %v", err)
		return nil
	}
	obs, err := occurrence.FromDB(context.Background(), conn, table)
	if err != nil {
		log.Printf("training data not loaded: %v", err)
		return nil
	}
	return obs
}

// New creates a new sdmap server.
func New(cfg Config) (*Server, error) {
	model, err := LoadModel(cfg)
	if err != nil {
		return nil, err
	}
	renderer, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("sdmap API", "0.1.0")
	humaConfig.Info.Description = "Species distribution map renderer: prediction raster overlays with training-data markers."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaAPI := humago.New(mux, humaConfig)

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		model:    model,
		renderer: renderer,
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	return db.Close()
}

// OpenAPI returns the generated API description.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

func (s *Server) routes() {
	handler := api.NewAPIHandler(&api.Services{Model: s.model})
	handler.RegisterRoutes(s.humaAPI)

	viewerHandler := viewer.NewHandler(s.model, s.renderer)
	viewerHandler.RegisterRoutes(s.humaAPI)

	s.mux.HandleFunc("/map", s.handleMap)
	s.mux.HandleFunc("/viewer", s.handleViewer)
	s.mux.HandleFunc("/", s.handleRoot)
}

// handleMap renders the map document for one band. The document is
// fully assembled before the first byte leaves; a failed render never
// emits a partial page.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	band := 0
	if v := r.URL.Query().Get("band"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "band must be an integer", http.StatusBadRequest)
			return
		}
		band = n
	}

	var buf bytes.Buffer
	if err := s.model.RenderMap(&buf, band); err != nil {
		var idxErr *raster.InvalidIndexError
		if errors.As(err, &idxErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, b := range s.model.Bands() {
		names = append(names, b.Name)
	}

	var buf bytes.Buffer
	err := s.renderer.RenderToBuffer(&buf, "viewer", map[string]any{
		"Title": s.model.Settings().Title,
		"Band":  s.model.Settings().Band,
		"Bands": names,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/viewer", http.StatusFound)
}
