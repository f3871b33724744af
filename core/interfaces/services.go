// ABOUTME: Capability interfaces consumed by the enrichment pipeline
// ABOUTME: LLM and search backends are opaque collaborators behind these contracts

package interfaces

import (
	"context"

	"enrichment-app-api/core/domain"
)

// TextGenerator turns a prompt into text.
// Implementations wrap an LLM API; tests use deterministic stubs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SearchBackend executes one web search.
// Results are returned as-is; validation happens in the web searcher.
type SearchBackend interface {
	// Search returns at most limit organic results for the query
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Name identifies the backend in logs and errors
	Name() string

	// RequiresPacing is true for scraping backends that need
	// a randomized delay between requests
	RequiresPacing() bool
}
