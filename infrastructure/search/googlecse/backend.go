// ABOUTME: Google Programmable Search (Custom Search JSON API) backend
// ABOUTME: The API returns at most ten results per request

package googlecse

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
	defaultBaseURL = "https://www.googleapis.com"
	backendName    = "googlecse"
	maxNum         = 10
)

// Backend queries the Custom Search JSON API
type Backend struct {
	http    interfaces.HTTPClient
	apiKey  string
	cx      string
	baseURL string
}

type response struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// New creates a Custom Search backend
func New(httpClient interfaces.HTTPClient, apiKey, cx, baseURL string) (*Backend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is not configured")
	}
	if strings.TrimSpace(cx) == "" {
		return nil, errors.New("google search engine id (cx) is not configured")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Backend{
		http:    httpClient,
		apiKey:  strings.TrimSpace(apiKey),
		cx:      strings.TrimSpace(cx),
		baseURL: baseURL,
	}, nil
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
	num := limit
	if num <= 0 || num > maxNum {
		num = maxNum
	}

	params := url.Values{}
	params.Set("key", b.apiKey)
	params.Set("cx", b.cx)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", num))

	resp, err := b.http.Get(ctx, b.baseURL+"/customsearch/v1?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out response
	if err := standard.DecodeJSON(resp, backendName, &out); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(out.Items))
	for _, item := range out.Items {
		results = append(results, domain.SearchResult{Title: item.Title, Snippet: item.Snippet, URL: item.Link})
	}
	return results, nil
}
