// ABOUTME: Builds a client from environment configuration
// ABOUTME: Shares the LLM, search and HTTP factories with the API server

package enrichlib

import (
	"enrichment-app-api/core/interfaces"
	stdhttp "enrichment-app-api/infrastructure/http/standard"
	"enrichment-app-api/infrastructure/llm"
	"enrichment-app-api/infrastructure/search"
	"enrichment-app-api/pkg/config"
)

// DefaultHTTPClient creates the HTTP client used by REST backends
func DefaultHTTPClient(cfg config.SearchConfig) interfaces.HTTPClient {
	return stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
		UserAgent:   cfg.UserAgent,
	})
}

// ConfigOptions returns the options described by cfg. httpClient serves
// the REST search backends; nil uses DefaultHTTPClient. LLM providers
// build their own SDK clients bounded by the LLM timeout.
func ConfigOptions(cfg *config.Config, httpClient interfaces.HTTPClient) ([]Option, error) {
	if httpClient == nil {
		httpClient = DefaultHTTPClient(cfg.Search)
	}

	generator, err := llm.NewTextGenerator(cfg.LLM)
	if err != nil {
		return nil, &Error{Type: ErrorTypeConfiguration, Message: "cannot create LLM client", Cause: err}
	}

	backend, err := search.NewBackend(cfg.Search, httpClient)
	if err != nil {
		return nil, &Error{Type: ErrorTypeConfiguration, Message: "cannot create search backend", Cause: err}
	}

	return []Option{
		WithTextGenerator(generator),
		WithSearchBackend(backend),
		WithMaxEntities(cfg.Pipeline.MaxEntities),
		WithMaxResults(cfg.Search.MaxResults),
		WithPacingDelay(cfg.Search.MinDelay, cfg.Search.MaxDelay),
		WithContactExtraction(cfg.Pipeline.ContactExtraction),
	}, nil
}

// NewClientFromConfig creates a client wired from configuration
func NewClientFromConfig(cfg *config.Config, extra ...Option) (*Client, error) {
	opts, err := ConfigOptions(cfg, nil)
	if err != nil {
		return nil, err
	}
	return NewClient(append(opts, extra...)...)
}
