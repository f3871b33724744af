// ABOUTME: Main client for the enrichment library
// ABOUTME: Runs the enrichment pipeline without HTTP dependencies

package enrichlib

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/extraction"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/core/pipeline"
	"enrichment-app-api/core/templater"
	"enrichment-app-api/core/websearch"
)

// Run is the result of one enrichment run
type Run = domain.PipelineRun

// Request is one enrichment invocation
type Request struct {
	Source   io.Reader
	Filename string
	Query    string
	Column   string
}

// Config holds the configuration for the client
type Config struct {
	TextGenerator interfaces.TextGenerator
	SearchBackend interfaces.SearchBackend
	Logger        interfaces.Logger
	Recorder      pipeline.Recorder

	MaxEntities       int
	MaxResults        int
	MinDelay          time.Duration
	MaxDelay          time.Duration
	ContactExtraction bool
}

// Client is the main entry point for the enrichment library
type Client struct {
	orchestrator *pipeline.Orchestrator
	config       Config
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	searcher := websearch.New(config.SearchBackend,
		websearch.WithPacer(websearch.NewRandomPacer(config.MinDelay, config.MaxDelay)),
		websearch.WithMaxResults(config.MaxResults),
		websearch.WithLogger(config.Logger),
	)

	orchestrator := pipeline.New(
		pipeline.Config{MaxEntities: config.MaxEntities},
		templater.New(config.TextGenerator, config.Logger),
		searcher,
		extraction.New(config.TextGenerator, config.ContactExtraction, config.Logger),
		config.Recorder,
		config.Logger,
	)

	return &Client{orchestrator: orchestrator, config: config}, nil
}

// Run executes one enrichment run
func (c *Client) Run(ctx context.Context, req Request) (*Run, error) {
	return c.orchestrator.Run(ctx, pipeline.Request{
		Source:   req.Source,
		Filename: req.Filename,
		Query:    req.Query,
		Column:   req.Column,
	})
}

// RunFile enriches a table read from disk
func (c *Client) RunFile(ctx context.Context, path, query, column string) (*Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Type: ErrorTypeValidation, Message: "cannot open input file", Cause: err}
	}
	defer f.Close()

	return c.Run(ctx, Request{
		Source:   f,
		Filename: filepath.Base(path),
		Query:    query,
		Column:   column,
	})
}

// Pipeline exposes the orchestrator for HTTP handlers
func (c *Client) Pipeline() *pipeline.Orchestrator {
	return c.orchestrator
}

// MaxEntities returns the configured per-run cap
func (c *Client) MaxEntities() int {
	return c.orchestrator.MaxEntities()
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.TextGenerator == nil {
		return NewError(ErrorTypeConfiguration, "text generator is required")
	}

	if config.SearchBackend == nil {
		return NewError(ErrorTypeConfiguration, "search backend is required")
	}

	if config.Logger == nil {
		config.Logger = interfaces.NopLogger{}
	}

	if config.Recorder == nil {
		config.Recorder = pipeline.NopRecorder{}
	}

	return nil
}
