// Package core contains the business logic of the enrichment service.
// It is framework-agnostic and can be used without HTTP or any concrete
// LLM or search provider.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure models (Table, Entity, QueryTemplate, SearchResult, Outcome, PipelineRun)
// - entities: Table parsing and entity extraction from one column
// - templater: One LLM call that turns the user's query into a search template
// - websearch: Result hygiene and pacing around a search backend
// - extraction: One LLM call per entity plus email and phone matching
// - pipeline: The orchestrator that runs every entity and isolates failures
// - errors: Typed errors separating fatal run errors from per-entity failures
// - interfaces: Contracts for external dependencies (HTTP, logger, LLM, search)
//
// # Design Principles
//
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - LLM and search calls sit behind single-method capabilities so tests use stubs
//
// # Usage Example
//
//	import (
//	    "enrichment-app-api/core/extraction"
//	    "enrichment-app-api/core/pipeline"
//	    "enrichment-app-api/core/templater"
//	    "enrichment-app-api/core/websearch"
//	)
//
//	orchestrator := pipeline.New(
//	    pipeline.Config{MaxEntities: 27},
//	    templater.New(generator, logger),
//	    websearch.New(backend, websearch.WithLogger(logger)),
//	    extraction.New(generator, true, logger),
//	    nil,
//	    logger,
//	)
//
//	run, err := orchestrator.Run(ctx, pipeline.Request{
//	    Source:   file,
//	    Filename: "companies.csv",
//	    Query:    "who is the CEO",
//	    Column:   "Company",
//	})
package core
