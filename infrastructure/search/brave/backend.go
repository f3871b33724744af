// ABOUTME: Brave Search API backend

package brave

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/infrastructure/http/standard"
)

const (
	defaultBaseURL = "https://api.search.brave.com"
	backendName    = "brave"
	maxCount       = 20
)

// Backend queries the Brave web search API
type Backend struct {
	http    interfaces.HTTPClient
	apiKey  string
	baseURL string
}

type response struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// New creates a Brave backend
func New(httpClient interfaces.HTTPClient, apiKey, baseURL string) (*Backend, error) {
	if apiKey == "" {
		return nil, errors.New("brave api key is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Backend{http: httpClient, apiKey: apiKey, baseURL: baseURL}, nil
}

// Name identifies the backend
func (b *Backend) Name() string {
	return backendName
}

// RequiresPacing is false for API backends
func (b *Backend) RequiresPacing() bool {
	return false
}

// Search runs one query
func (b *Backend) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	count := limit
	if count <= 0 || count > maxCount {
		count = maxCount
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", count))

	resp, err := b.http.Get(ctx, b.baseURL+"/res/v1/web/search?"+params.Encode(), map[string]string{
		"Accept":               "application/json",
		"X-Subscription-Token": b.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var out response
	if err := standard.DecodeJSON(resp, backendName, &out); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(out.Web.Results))
	for i, r := range out.Web.Results {
		if limit > 0 && i >= limit {
			break
		}
		results = append(results, domain.SearchResult{Title: r.Title, Snippet: r.Description, URL: r.URL})
	}
	return results, nil
}
