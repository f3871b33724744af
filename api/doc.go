// Package api provides the HTTP API layer for the enrichment service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	POST /api/enrich   multipart upload: file, query, selectedColumn
//	POST /api/gemini   legacy alias of /api/enrich
//	GET  /healthz      liveness and configuration summary
//	GET  /metrics      Prometheus exposition (when enabled)
//
// The OpenAPI document is served at /openapi.json and the Swagger UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: memory.NewStore(10, time.Minute),
//	})
//
//	handlers.NewEnrichHandler(orchestrator, logger, 10<<20).RegisterRoutes(humaAPI, true)
//	http.ListenAndServe(":5000", router)
//
// # Error Handling
//
// Every error response has the shape
//
//	{"error": "column 'Name' not found (available: Company, City)"}
//
// Validation failures map to 400, oversized uploads to 413, rate limiting
// to 429, upstream outages during template generation to 503 and anything
// else to 500. Per-entity failures never fail the request; they appear as
// failure entries in the responses array.
package api
