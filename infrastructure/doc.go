// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as LLM providers, web search, HTTP communication, rate limiting,
// metrics and logging.
//
// The infrastructure package is organized by technical concern:
//
// - http/standard: Standard library HTTP client with optional GET retries and JSON helpers
// - llm/{gemini,openai,anthropic}: TextGenerator implementations and a factory
// - search/{scrape,serper,brave,googlecse}: SearchBackend implementations and a factory
// - ratelimit/{memory,redis}: Per-client request limit stores
// - metrics/prometheus: Pipeline recorder and /metrics handler
// - logger/standard: logrus logger with optional rotated file output
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Exercised against httptest servers and miniredis
//
// # LLM and Search
//
//	httpClient := standard.NewStandardHTTPClient(30 * time.Second)
//	generator, err := llm.NewTextGenerator(cfg.LLM)
//	backend, err := search.NewBackend(cfg.Search, httpClient)
//
// # Rate Limiting
//
//	store := memory.NewStore(10, time.Minute)
//	allowed, err := store.Allow(ctx, clientIP)
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := standard.NewStandardLogger()
//	logger.Info("Run started", map[string]interface{}{
//	    "run_id":   run.ID,
//	    "entities": len(run.Entities),
//	})
package infrastructure
