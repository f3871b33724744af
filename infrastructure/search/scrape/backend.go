// ABOUTME: Self-hosted search backend that scrapes the DuckDuckGo HTML results page
// ABOUTME: Uses a colly collector per query; callers must pace requests between entities

package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

const (
	defaultBaseURL   = "https://html.duckduckgo.com/html/"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultTimeout   = 20 * time.Second
	backendName      = "scrape"
)

// Options configures the backend
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Backend scrapes organic results from an HTML search page
type Backend struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

// New creates a scraping backend
func New(opts Options) *Backend {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Backend{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		transport: http.DefaultTransport,
	}
}

// Name identifies the backend
func (b *Backend) Name() string {
	return backendName
}

// RequiresPacing is true: the engine blocks clients that query too fast
func (b *Backend) RequiresPacing() bool {
	return true
}

// Search fetches the results page and parses organic results
func (b *Backend) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := url.Parse(b.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search url: %w", err)
	}
	params := target.Query()
	params.Set("q", query)
	target.RawQuery = params.Encode()

	c := colly.NewCollector(
		colly.UserAgent(b.userAgent),
		colly.MaxBodySize(5*1024*1024), // 5MB limit
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(b.timeout)
	c.WithTransport(&contextTransport{ctx: ctx, base: b.transport})

	var results []domain.SearchResult
	c.OnHTML("div.result", func(e *colly.HTMLElement) {
		if limit > 0 && len(results) >= limit {
			return
		}
		if e.DOM.HasClass("result--ad") {
			return
		}
		if r, ok := parseResult(e.DOM, e.Request); ok {
			results = append(results, r)
		}
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			visitErr = &apperrors.ExternalAPIError{
				StatusCode: r.StatusCode,
				Message:    err.Error(),
				API:        backendName,
			}
			return
		}
		visitErr = err
	})

	if err := c.Visit(target.String()); err != nil && visitErr == nil {
		visitErr = err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if visitErr != nil {
		return nil, visitErr
	}

	return results, nil
}

func parseResult(s *goquery.Selection, req *colly.Request) (domain.SearchResult, bool) {
	link := s.Find("a.result__a").First()
	href, ok := link.Attr("href")
	if !ok {
		return domain.SearchResult{}, false
	}

	return domain.SearchResult{
		Title:   strings.TrimSpace(link.Text()),
		Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		URL:     resolveLink(req.AbsoluteURL(href)),
	}, true
}

// resolveLink unwraps redirect links of the form /l/?uddg=<target>
func resolveLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// contextTransport binds collector requests to the caller's context
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ctx == nil {
		return nil, errors.New("nil context")
	}
	return t.base.RoundTrip(req.WithContext(t.ctx))
}
