// Package viewer contains the Datastar SSE handler behind the viewer
// page's band switcher.
package viewer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ecomapper/sdmap/internal/service"
	"github.com/ecomapper/sdmap/internal/templates"
)

// Handler patches the map frame when the selected band changes.
type Handler struct {
	model    *service.ModelService
	renderer *templates.Renderer
}

func NewHandler(model *service.ModelService, renderer *templates.Renderer) *Handler {
	return &Handler{model: model, renderer: renderer}
}

// RegisterRoutes registers viewer routes with Huma.
func (h *Handler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/viewer/map", h.SwitchBand, huma.OperationTags("viewer"))
}

// SignalsInput captures the Datastar signals. On GET requests the
// client sends them JSON-encoded in the "datastar" query parameter.
type SignalsInput struct {
	Datastar string `query:"datastar" doc:"JSON-encoded Datastar signals"`
}

// signals is the flat JSON object Datastar sends.
type signals map[string]any

func (s signals) int(key string) int {
	switch n := s[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// SwitchBand re-renders the map frame for the band in the signals.
func (h *Handler) SwitchBand(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	var sig signals
	if input.Datastar != "" {
		if err := json.Unmarshal([]byte(input.Datastar), &sig); err != nil {
			return nil, huma.Error400BadRequest("Invalid signals: " + err.Error())
		}
	}

	band := sig.int("band")
	if band == 0 {
		band = 1
	}

	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			r, w := humago.Unwrap(humaCtx)
			sse := datastar.NewSSE(w, r)

			if band < 1 || band > h.model.BandCount() {
				sse.MarshalAndPatchSignals(map[string]any{
					"error": fmt.Sprintf("band %d out of range", band),
				})
				return
			}

			frame, err := h.renderer.Render("map-frame", map[string]any{"Band": band})
			if err != nil {
				sse.MarshalAndPatchSignals(map[string]any{"error": err.Error()})
				return
			}
			sse.PatchElements(frame)
			sse.MarshalAndPatchSignals(map[string]any{"error": ""})
		},
	}, nil
}
