package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"enrichment-app-api/api/dto/responses"
	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
	"enrichment-app-api/core/pipeline"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fields map[string]string, filename, content string) (string, io.Reader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return "Content-Type: " + w.FormDataContentType(), &buf
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	msg, _ := payload["error"].(string)
	return msg
}

func TestEnrich_Success(t *testing.T) {
	_, api := humatest.New(t)

	service := &mockEnrichService{
		runFunc: func(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error) {
			assert.Equal(t, "find the CEO", req.Query)
			assert.Equal(t, "Company", req.Column)
			assert.Equal(t, "companies.csv", req.Filename)
			require.NotNil(t, req.Source)

			tmpl, _ := domain.NewQueryTemplate("{entity} CEO")
			entity := domain.Entity{Value: "Acme", Row: 1}
			return &domain.PipelineRun{
				ID:            "run-1",
				Template:      tmpl,
				TotalEntities: 1,
				Entities:      []domain.Entity{entity},
				Outcomes: []domain.Outcome{
					domain.NewSuccess(entity, domain.Extraction{Answer: "Jane Doe", Sufficient: true}, nil),
				},
				StartedAt:  time.Now(),
				FinishedAt: time.Now(),
			}, nil
		},
	}
	NewEnrichHandler(service, nil, 1<<20).RegisterRoutes(api, false)

	header, body := multipartBody(t, map[string]string{
		"query":          "find the CEO",
		"selectedColumn": "Company",
	}, "companies.csv", "Company\nAcme\n")

	resp := api.Post("/api/enrich", header, body)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var out responses.EnrichResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	require.Len(t, out.Responses, 1)
	assert.Equal(t, "Acme", out.Responses[0].Entity)
	assert.Equal(t, "Jane Doe", out.Responses[0].Info)
}

func TestEnrich_ValidationErrorReturns400(t *testing.T) {
	_, api := humatest.New(t)

	service := &mockEnrichService{
		runFunc: func(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error) {
			return nil, &apperrors.ValidationError{Field: "file", Message: "file is required"}
		},
	}
	NewEnrichHandler(service, nil, 1<<20).RegisterRoutes(api, false)

	header, body := multipartBody(t, map[string]string{"query": "q", "selectedColumn": "c"}, "", "")
	resp := api.Post("/api/enrich", header, body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, decodeError(t, resp.Body.Bytes()), "file is required")
}

func TestEnrich_TemplateOutageReturns503(t *testing.T) {
	_, api := humatest.New(t)

	service := &mockEnrichService{
		runFunc: func(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error) {
			return nil, &apperrors.TemplateGenerationError{Query: req.Query, Cause: context.DeadlineExceeded}
		},
	}
	NewEnrichHandler(service, nil, 1<<20).RegisterRoutes(api, false)

	header, body := multipartBody(t, map[string]string{"query": "q", "selectedColumn": "c"}, "a.csv", "c\nx\n")
	resp := api.Post("/api/enrich", header, body)

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.NotEmpty(t, decodeError(t, resp.Body.Bytes()))
}

func TestEnrich_UnexpectedErrorReturns500(t *testing.T) {
	_, api := humatest.New(t)

	service := &mockEnrichService{
		runFunc: func(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error) {
			return nil, errors.New("disk on fire")
		},
	}
	NewEnrichHandler(service, nil, 1<<20).RegisterRoutes(api, false)

	header, body := multipartBody(t, map[string]string{"query": "q", "selectedColumn": "c"}, "a.csv", "c\nx\n")
	resp := api.Post("/api/enrich", header, body)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "internal server error", decodeError(t, resp.Body.Bytes()))
}

func TestEnrich_LegacyRoute(t *testing.T) {
	_, api := humatest.New(t)

	service := &mockEnrichService{}
	NewEnrichHandler(service, nil, 1<<20).RegisterRoutes(api, true)

	header, body := multipartBody(t, map[string]string{"query": "q", "selectedColumn": "c"}, "a.csv", "c\nx\n")
	resp := api.Post("/api/gemini", header, body)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, service.calls)
}

func TestEnrich_LegacyRouteDisabled(t *testing.T) {
	_, api := humatest.New(t)

	NewEnrichHandler(&mockEnrichService{}, nil, 1<<20).RegisterRoutes(api, false)

	assert.Nil(t, api.OpenAPI().Paths["/api/gemini"])
	assert.NotNil(t, api.OpenAPI().Paths["/api/enrich"])
}

func TestEnrich_WithPipeline(t *testing.T) {
	searcher := &stubSearcher{}
	orchestrator := pipeline.New(pipeline.Config{MaxEntities: 2}, stubTemplater{}, searcher, stubExtractor{}, nil, nil)

	t.Run("missing column makes no searches", func(t *testing.T) {
		_, api := humatest.New(t)
		NewEnrichHandler(orchestrator, nil, 1<<20).RegisterRoutes(api, false)

		header, body := multipartBody(t, map[string]string{
			"query":          "CEO",
			"selectedColumn": "Name",
		}, "companies.csv", "Company\nAcme\n")
		resp := api.Post("/api/enrich", header, body)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, decodeError(t, resp.Body.Bytes()), "Name")
		assert.Equal(t, 0, searcher.calls)
	})

	t.Run("entities are capped and deduplicated", func(t *testing.T) {
		_, api := humatest.New(t)
		NewEnrichHandler(orchestrator, nil, 1<<20).RegisterRoutes(api, false)

		header, body := multipartBody(t, map[string]string{
			"query":          "CEO",
			"selectedColumn": "Company",
		}, "companies.csv", "Company\nAcme\nAcme\nGlobex\nInitech\n")
		resp := api.Post("/api/enrich", header, body)

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		var out responses.EnrichResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		assert.Equal(t, 3, out.TotalEntities)
		assert.True(t, out.Truncated)
		require.Len(t, out.Responses, 2)
		assert.Equal(t, "Acme", out.Responses[0].Entity)
		assert.Equal(t, "Globex", out.Responses[1].Entity)
		assert.Equal(t, "answer for Globex", out.Responses[1].Info)
		assert.Equal(t, 2, searcher.calls)
	})
}
