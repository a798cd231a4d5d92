// Package api defines the Huma API routes and handlers.
package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ecomapper/sdmap/internal/service"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Model *service.ModelService
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

type InfoBody struct {
	Name         string `json:"name" doc:"Service name"`
	Version      string `json:"version" doc:"Service version"`
	Bands        int    `json:"bands" doc:"Number of raster bands"`
	Observations int    `json:"observations" doc:"Number of training observations"`
}

type BandsOutput struct {
	Body struct {
		Bands []service.BandInfo `json:"bands" doc:"Raster bands with value ranges"`
	}
}

type ObservationBody struct {
	Lon  float64 `json:"lon" doc:"Longitude"`
	Lat  float64 `json:"lat" doc:"Latitude"`
	Type string  `json:"type" doc:"Observation category" enum:"presence,absence,background"`
}

type ObservationsOutput struct {
	Body struct {
		Observations []ObservationBody `json:"observations" doc:"Training observations"`
		Count        int               `json:"count" doc:"Number of observations"`
	}
}

// APIHandler holds all REST API handlers.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterRoutes registers all REST routes with Huma.
func (h *APIHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("info"))
	huma.Get(api, "/api/v1/bands", h.GetBands, huma.OperationTags("model"))
	huma.Get(api, "/api/v1/occurrences", h.GetOccurrences, huma.OperationTags("model"))
}

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *APIHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:         "sdmap",
		Version:      "0.1.0",
		Bands:        h.svc.Model.BandCount(),
		Observations: len(h.svc.Model.TrainingData()),
	}}, nil
}

func (h *APIHandler) GetBands(ctx context.Context, input *struct{}) (*BandsOutput, error) {
	out := &BandsOutput{}
	out.Body.Bands = h.svc.Model.Bands()
	return out, nil
}

func (h *APIHandler) GetOccurrences(ctx context.Context, input *struct{}) (*ObservationsOutput, error) {
	obs := h.svc.Model.TrainingData()

	out := &ObservationsOutput{}
	out.Body.Observations = make([]ObservationBody, 0, len(obs))
	for _, o := range obs {
		out.Body.Observations = append(out.Body.Observations, ObservationBody{
			Lon:  o.Lon,
			Lat:  o.Lat,
			Type: string(o.Category),
		})
	}
	out.Body.Count = len(obs)
	return out, nil
}
