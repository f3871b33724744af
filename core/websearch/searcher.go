// ABOUTME: Web searcher runs one search per entity and cleans up the results
// ABOUTME: Malformed results are dropped and every backend failure becomes a SearchError

package websearch

import (
	"context"
	"errors"
	"strings"

	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/pkg/utils/html"
)

// DefaultMaxResults is the number of results kept per entity
const DefaultMaxResults = 5

// Searcher executes entity searches against a single backend
type Searcher struct {
	backend    interfaces.SearchBackend
	pacer      Pacer
	maxResults int
	logger     interfaces.Logger
}

// Option configures a Searcher
type Option func(*Searcher)

// WithPacer sets the pacer used for backends that require pacing
func WithPacer(p Pacer) Option {
	return func(s *Searcher) {
		if p != nil {
			s.pacer = p
		}
	}
}

// WithMaxResults caps the number of results returned per search
func WithMaxResults(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l interfaces.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a searcher for the backend
func New(backend interfaces.SearchBackend, opts ...Option) *Searcher {
	s := &Searcher{
		backend:    backend,
		pacer:      NoPacer{},
		maxResults: DefaultMaxResults,
		logger:     interfaces.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the backend name
func (s *Searcher) Backend() string {
	return s.backend.Name()
}

// Search runs the query and returns cleaned results.
// An empty result list is not an error.
func (s *Searcher) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, s.wrap(query, errors.New("empty search query"))
	}

	if s.backend.RequiresPacing() {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, s.wrap(query, err)
		}
	}

	raw, err := s.backend.Search(ctx, query, s.maxResults)
	if err != nil {
		return nil, s.wrap(query, err)
	}

	results := Clean(raw, s.maxResults)

	s.logger.Debug("Search completed", map[string]interface{}{
		"backend":  s.backend.Name(),
		"query":    query,
		"raw":      len(raw),
		"accepted": len(results),
	})

	return results, nil
}

func (s *Searcher) wrap(query string, err error) error {
	var searchErr *apperrors.SearchError
	if errors.As(err, &searchErr) {
		return err
	}
	return &apperrors.SearchError{
		Backend: s.backend.Name(),
		Query:   query,
		Cause:   err,
	}
}

// Clean normalises raw backend results: strips markup, drops results that
// fail validation, removes duplicate urls and keeps at most max entries.
func Clean(raw []domain.SearchResult, max int) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		if max > 0 && len(results) >= max {
			break
		}

		cleaned := domain.SearchResult{
			Title:   html.StripHTML(r.Title),
			Snippet: html.StripHTML(r.Snippet),
			URL:     strings.TrimSpace(r.URL),
		}
		if cleaned.Validate() != nil {
			continue
		}

		key := strings.TrimSuffix(cleaned.URL, "/")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		results = append(results, cleaned)
	}

	return results
}
