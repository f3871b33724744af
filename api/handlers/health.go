// ABOUTME: Health check handler

package handlers

import (
	"context"
	"net/http"

	"enrichment-app-api/api/dto/responses"
	"github.com/danielgtaylor/huma/v2"
)

// HealthInfo is the static configuration reported by the health check
type HealthInfo struct {
	LLMProvider   string
	SearchBackend string
	MaxEntities   int
}

// HealthHandler serves GET /healthz
type HealthHandler struct {
	info HealthInfo
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(info HealthInfo) *HealthHandler {
	return &HealthHandler{info: info}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health reports that the service is up
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: responses.HealthResponse{
		Status:        "ok",
		LLMProvider:   h.info.LLMProvider,
		SearchBackend: h.info.SearchBackend,
		MaxEntities:   h.info.MaxEntities,
	}}, nil
}
