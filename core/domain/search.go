// ABOUTME: Search result domain model returned by web search backends
// ABOUTME: Required fields are validated at the boundary before results reach the extractor

package domain

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrMissingTitle is returned for results without a title
	ErrMissingTitle = errors.New("search result has no title")

	// ErrMissingSnippet is returned for results without a snippet
	ErrMissingSnippet = errors.New("search result has no snippet")

	// ErrInvalidURL is returned for results without an absolute http(s) url
	ErrInvalidURL = errors.New("search result has no usable url")
)

// SearchResult is a single organic result from a search backend
type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// Validate checks that every field is usable
func (r SearchResult) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(r.Snippet) == "" {
		return ErrMissingSnippet
	}

	u, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}

	return nil
}
