// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS and the middleware chain

package api

import (
	"net/http"

	"enrichment-app-api/api/middleware"
	"enrichment-app-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	apiTitle   = "Enrichment API"
	apiVersion = "1.0.0"
)

// MetricsExporter observes requests and serves the scrape endpoint
type MetricsExporter interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	AllowedOrigins []string
	MaxUploadBytes int64

	// RateLimiter enables per-client limits when set
	RateLimiter middleware.RateLimitStore

	// Metrics enables request metrics and GET /metrics when set
	Metrics MetricsExporter
}

// Paths never counted against a client's rate limit
var unlimitedPaths = []string{"/healthz", "/metrics", "/docs", "/openapi.json", "/openapi.yaml"}

// NewAPI creates a Huma API instance with CORS only
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// CORS must be first so preflight requests skip everything else
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Window", "Retry-After"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(cfg.Metrics))
	}

	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimiter, cfg.Logger, unlimitedPaths...))
	}

	router.Use(middleware.BodyLimitMiddleware(cfg.MaxUploadBytes))

	router.NotFound(jsonError(http.StatusNotFound, "Not found"))
	router.MethodNotAllowed(jsonError(http.StatusMethodNotAllowed, "Method not allowed"))

	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics.Handler())
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Researches every entity in a table column with web search and an LLM"

	// The OpenAPI document is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs
	api := humachi.New(router, config)

	return api, router
}

func jsonError(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"` + msg + `"}`))
	}
}
