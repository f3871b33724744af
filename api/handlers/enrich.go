// ABOUTME: Enrichment handler for the Huma API
// ABOUTME: Accepts a table upload and returns one outcome per entity

package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"enrichment-app-api/api/dto/mappers"
	"enrichment-app-api/api/dto/requests"
	"enrichment-app-api/api/dto/responses"
	"enrichment-app-api/api/middleware"
	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/core/pipeline"
	"github.com/danielgtaylor/huma/v2"
)

// EnrichService runs the enrichment pipeline
type EnrichService interface {
	Run(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error)
}

// EnrichHandler handles enrichment requests
type EnrichHandler struct {
	service        EnrichService
	logger         interfaces.Logger
	maxUploadBytes int64
}

// NewEnrichHandler creates a new enrichment handler
func NewEnrichHandler(service EnrichService, logger interfaces.Logger, maxUploadBytes int64) *EnrichHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &EnrichHandler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers the enrichment route and, when legacy is set,
// the alias older clients still post to
func (h *EnrichHandler) RegisterRoutes(api huma.API, legacy bool) {
	huma.Register(api, huma.Operation{
		OperationID:  "enrich",
		Method:       http.MethodPost,
		Path:         "/api/enrich",
		Summary:      "Enrich a column of entities",
		Description:  "Uploads a table, extracts the selected column and researches every entity with web search and an LLM",
		Tags:         []string{"Enrichment"},
		MaxBodyBytes: h.maxUploadBytes,
	}, h.Enrich)

	if !legacy {
		return
	}

	huma.Register(api, huma.Operation{
		OperationID:  "enrichLegacy",
		Method:       http.MethodPost,
		Path:         "/api/gemini",
		Summary:      "Enrich a column of entities (legacy path)",
		Tags:         []string{"Enrichment"},
		Deprecated:   true,
		MaxBodyBytes: h.maxUploadBytes,
	}, h.Enrich)
}

// EnrichInput is the multipart upload: file, query and selectedColumn
type EnrichInput struct {
	RawBody multipart.Form
}

// EnrichOutput defines the output for the Enrich operation
type EnrichOutput struct {
	Body responses.EnrichResponse
}

// Enrich handles POST /api/enrich
func (h *EnrichHandler) Enrich(ctx context.Context, input *EnrichInput) (*EnrichOutput, error) {
	form, err := requests.ParseEnrichForm(&input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("cannot read uploaded file", err)
	}
	defer form.Close()

	run, err := h.service.Run(ctx, form.PipelineRequest())
	if err != nil {
		humaErr := toHumaError(err)
		if se, ok := humaErr.(huma.StatusError); ok && se.GetStatus() >= http.StatusInternalServerError {
			h.logger.Error("Enrichment run failed", map[string]interface{}{
				"request_id": middleware.RequestIDFromContext(ctx),
				"error":      err.Error(),
			})
		}
		return nil, humaErr
	}

	succeeded, failed := run.Counts()
	h.logger.Info("Enrichment run served", map[string]interface{}{
		"request_id": middleware.RequestIDFromContext(ctx),
		"run_id":     run.ID,
		"filename":   form.Filename,
		"succeeded":  succeeded,
		"failed":     failed,
		"truncated":  run.Truncated(),
	})

	return &EnrichOutput{Body: *mappers.ToEnrichResponse(run)}, nil
}
