package pipeline

import (
	"context"
	"sync"
	"time"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/extraction"
)

// mockTemplater is a mock implementation of the QueryTemplater interface
type mockTemplater struct {
	generateFunc func(ctx context.Context, query string) (domain.QueryTemplate, error)
	calls        int
}

func (m *mockTemplater) Generate(ctx context.Context, query string) (domain.QueryTemplate, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, query)
	}
	return domain.NewQueryTemplate("{entity} " + query)
}

// mockSearcher is a mock implementation of the WebSearcher interface
type mockSearcher struct {
	searchFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)
	queries    []string
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return []domain.SearchResult{{
		Title:   "Result for " + query,
		Snippet: "snippet",
		URL:     "https://example.com/search",
	}}, nil
}

// mockExtractor is a mock implementation of the InformationExtractor interface
type mockExtractor struct {
	extractFunc func(ctx context.Context, req extraction.Request) (domain.Extraction, error)
	requests    []extraction.Request
}

func (m *mockExtractor) Extract(ctx context.Context, req extraction.Request) (domain.Extraction, error) {
	m.requests = append(m.requests, req)
	if m.extractFunc != nil {
		return m.extractFunc(ctx, req)
	}
	return domain.Extraction{Answer: "info about " + req.Entity, Sufficient: true}, nil
}

// recordingRecorder captures metrics calls
type recordingRecorder struct {
	mu        sync.Mutex
	runs      []string
	truncated int
	processed map[domain.OutcomeStatus]int
	stages    map[domain.FailureStage]int
	results   []int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{
		processed: make(map[domain.OutcomeStatus]int),
		stages:    make(map[domain.FailureStage]int),
	}
}

func (r *recordingRecorder) RunFinished(result string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, result)
}

func (r *recordingRecorder) EntitiesTruncated(skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.truncated += skipped
}

func (r *recordingRecorder) EntityProcessed(status domain.OutcomeStatus, stage domain.FailureStage, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed[status]++
	if stage != "" {
		r.stages[stage]++
	}
}

func (r *recordingRecorder) SearchResults(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, count)
}
