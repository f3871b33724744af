// ABOUTME: Serper.dev search backend returning Google organic results
// ABOUTME: Paid API, no request pacing needed

package serper

import (
	"context"
	"errors"
	"strings"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/infrastructure/http/standard"
)

const (
	defaultBaseURL = "https://google.serper.dev"
	backendName    = "serper"
)

// Backend queries the Serper search API
type Backend struct {
	http    interfaces.HTTPClient
	apiKey  string
	baseURL string
}

type request struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

type response struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// New creates a Serper backend
func New(httpClient interfaces.HTTPClient, apiKey, baseURL string) (*Backend, error) {
	if apiKey == "" {
		return nil, errors.New("serper api key is required")
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
	body, err := standard.EncodeJSON(request{Q: query, Num: limit})
	if err != nil {
		return nil, err
	}

	resp, err := b.http.Post(ctx, b.baseURL+"/search", body, map[string]string{
		"X-API-KEY": b.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var out response
	if err := standard.DecodeJSON(resp, backendName, &out); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(out.Organic))
	for i, r := range out.Organic {
		if limit > 0 && i >= limit {
			break
		}
		results = append(results, domain.SearchResult{Title: r.Title, Snippet: r.Snippet, URL: r.Link})
	}
	return results, nil
}
