// ABOUTME: Configuration options for the enrichment library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package enrichlib

import (
	"time"

	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/core/pipeline"
	"enrichment-app-api/core/websearch"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithTextGenerator sets the LLM used for templates and extraction
func WithTextGenerator(generator interfaces.TextGenerator) Option {
	return func(c *Config) error {
		c.TextGenerator = generator
		return nil
	}
}

// WrapTextGenerator decorates the generator set by earlier options
func WrapTextGenerator(wrap func(interfaces.TextGenerator) interfaces.TextGenerator) Option {
	return func(c *Config) error {
		if c.TextGenerator == nil {
			return NewError(ErrorTypeConfiguration, "no text generator to wrap")
		}
		c.TextGenerator = wrap(c.TextGenerator)
		return nil
	}
}

// WithSearchBackend sets the web search backend
func WithSearchBackend(backend interfaces.SearchBackend) Option {
	return func(c *Config) error {
		c.SearchBackend = backend
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithRecorder sets the pipeline metrics recorder
func WithRecorder(recorder pipeline.Recorder) Option {
	return func(c *Config) error {
		c.Recorder = recorder
		return nil
	}
}

// WithMaxEntities sets the per-run entity cap
func WithMaxEntities(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewError(ErrorTypeConfiguration, "max entities must be positive")
		}
		c.MaxEntities = n
		return nil
	}
}

// WithMaxResults sets how many search results are kept per entity
func WithMaxResults(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewError(ErrorTypeConfiguration, "max results must be positive")
		}
		c.MaxResults = n
		return nil
	}
}

// WithPacingDelay sets the random delay range used before scraping searches
func WithPacingDelay(min, max time.Duration) Option {
	return func(c *Config) error {
		if min < 0 || max < 0 {
			return NewError(ErrorTypeConfiguration, "pacing delays must not be negative")
		}
		c.MinDelay = min
		c.MaxDelay = max
		return nil
	}
}

// WithContactExtraction enables or disables email and phone extraction
func WithContactExtraction(enabled bool) Option {
	return func(c *Config) error {
		c.ContactExtraction = enabled
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Logger:            interfaces.NopLogger{},
		Recorder:          pipeline.NopRecorder{},
		MaxEntities:       pipeline.DefaultMaxEntities,
		MaxResults:        websearch.DefaultMaxResults,
		MinDelay:          3 * time.Second,
		MaxDelay:          8 * time.Second,
		ContactExtraction: true,
	}
}
