package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testRaster = `{
	"crs": "EPSG:4326",
	"extent": [5, 40, 15, 50],
	"bands": [
		{"name": "current", "w": 4, "h": 4, "values": [0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15]},
		{"name": "future", "w": 4, "h": 4, "values": [0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15]}
	]
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "raster.json"), []byte(testRaster), 0644); err != nil {
		t.Fatal(err)
	}

	srv, err := New(Config{Host: "localhost", Port: "0", DataDir: dataDir})
	if err != nil {
		t.Fatal(err)
	}
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServeMap(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/map")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /map = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "current") {
		t.Error("default map does not show band 1")
	}

	rec = get(t, srv, "/map?band=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /map?band=2 = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "future") {
		t.Error("map does not show band 2")
	}
}

func TestServeMapBadBand(t *testing.T) {
	srv := testServer(t)

	if rec := get(t, srv, "/map?band=9"); rec.Code != http.StatusBadRequest {
		t.Errorf("GET /map?band=9 = %d, want 400", rec.Code)
	}
	if rec := get(t, srv, "/map?band=x"); rec.Code != http.StatusBadRequest {
		t.Errorf("GET /map?band=x = %d, want 400", rec.Code)
	}
}

func TestServeViewer(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/viewer")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /viewer = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"map-frame", "current", "future"} {
		if !strings.Contains(body, want) {
			t.Errorf("viewer page missing %q", want)
		}
	}
}

func TestServeHealth(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Error("health body missing status")
	}
}

func TestServeBands(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/api/v1/bands")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/bands = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "current") || !strings.Contains(body, "future") {
		t.Errorf("bands listing = %s", body)
	}
}

func TestRootRedirectsToViewer(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/")
	if rec.Code != http.StatusFound {
		t.Fatalf("GET / = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/viewer" {
		t.Errorf("redirect to %q, want /viewer", loc)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "raster: predictions.json\nmap:\n  band: 2\n  maxBytes: 100000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if settings.Raster != "predictions.json" {
		t.Errorf("raster = %q", settings.Raster)
	}
	if settings.Table != "occurrences" {
		t.Errorf("table default = %q", settings.Table)
	}
	if settings.Map.Band != 2 || settings.Map.MaxBytes != 100000 {
		t.Errorf("map settings = %+v", settings.Map)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	settings, err := LoadSettings("")
	if err != nil {
		t.Fatal(err)
	}
	if settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
