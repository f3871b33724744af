package handlers

import (
	"context"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/extraction"
	"enrichment-app-api/core/pipeline"
)

type mockEnrichService struct {
	runFunc func(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error)
	calls   int
}

func (m *mockEnrichService) Run(ctx context.Context, req pipeline.Request) (*domain.PipelineRun, error) {
	m.calls++
	if m.runFunc != nil {
		return m.runFunc(ctx, req)
	}
	return &domain.PipelineRun{}, nil
}

type stubTemplater struct{}

func (stubTemplater) Generate(ctx context.Context, query string) (domain.QueryTemplate, error) {
	return domain.NewQueryTemplate("{entity} " + query)
}

type stubSearcher struct {
	calls int
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	s.calls++
	return []domain.SearchResult{{Title: "Result", Snippet: query, URL: "https://example.com"}}, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, req extraction.Request) (domain.Extraction, error) {
	return domain.Extraction{Answer: "answer for " + req.Entity, Sufficient: true}, nil
}
