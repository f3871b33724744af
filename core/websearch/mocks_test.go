package websearch

import (
	"context"

	"enrichment-app-api/core/domain"
)

// mockBackend is a mock implementation of the SearchBackend interface
type mockBackend struct {
	name       string
	pacing     bool
	searchFunc func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	calls      int
}

func (m *mockBackend) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	m.calls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockBackend) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockBackend) RequiresPacing() bool {
	return m.pacing
}

// countingPacer records waits without sleeping
type countingPacer struct {
	waits int
	err   error
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return p.err
}
