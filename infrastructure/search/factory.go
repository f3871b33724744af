// ABOUTME: Builds the configured search backend from search configuration

package search

import (
	"fmt"

	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/infrastructure/search/brave"
	"enrichment-app-api/infrastructure/search/googlecse"
	"enrichment-app-api/infrastructure/search/scrape"
	"enrichment-app-api/infrastructure/search/serper"
	"enrichment-app-api/pkg/config"
)

// NewBackend returns the backend selected by cfg.Backend
func NewBackend(cfg config.SearchConfig, httpClient interfaces.HTTPClient) (interfaces.SearchBackend, error) {
	switch cfg.Backend {
	case config.BackendScrape, "":
		return scrape.New(scrape.Options{
			BaseURL:   cfg.BaseURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		}), nil
	case config.BackendSerper:
		backend, err := serper.New(httpClient, cfg.APIKey, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.BackendBrave:
		backend, err := brave.New(httpClient, cfg.APIKey, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.BackendGoogleCSE:
		backend, err := googlecse.New(httpClient, cfg.APIKey, cfg.EngineID, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Backend)
	}
}
