// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Built once at startup, validated, then passed by value into every component

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM providers
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Search backends
const (
	BackendScrape    = "scrape"
	BackendSerper    = "serper"
	BackendBrave     = "brave"
	BackendGoogleCSE = "googlecse"
)

// Rate limit stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Pipeline contains enrichment run settings
	Pipeline PipelineConfig

	// LLM selects and configures the text generation provider
	LLM LLMConfig

	// Search selects and configures the web search backend
	Search SearchConfig

	// RateLimit configures per-client request limiting
	RateLimit RateLimitConfig

	// Log configures logging output
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxUploadBytes bounds the multipart request body
	MaxUploadBytes int64

	// CORSAllowedOrigins lists allowed origins; "*" allows all
	CORSAllowedOrigins []string
}

// PipelineConfig holds enrichment run settings
type PipelineConfig struct {
	// MaxEntities is the number of entities processed per run
	MaxEntities int

	// ContactExtraction enables email and phone matching on answers
	ContactExtraction bool
}

// LLMConfig holds text generation settings
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// SearchConfig holds web search settings
type SearchConfig struct {
	Backend string
	APIKey  string

	// EngineID is the Google programmable search engine id (cx)
	EngineID string

	BaseURL    string
	MaxResults int

	// MinDelay and MaxDelay bound the random delay before scraping requests
	MinDelay time.Duration
	MaxDelay time.Duration

	UserAgent string
	Timeout   time.Duration

	// MaxAttempts is the number of tries for GET requests
	MaxAttempts int
}

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	// Requests allowed per client per window
	Requests int
	Window   time.Duration

	// Store is memory or redis
	Store string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads .env files that exist, then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	return LoadFromEnv()
}

// LoadDotEnv loads the given files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderGemini))

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnvOrDefault("PORT", "5000"),
			ReadTimeout:        getEnvAsDurationOrDefault("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:       getEnvAsDurationOrDefault("WRITE_TIMEOUT", 10*time.Minute),
			MaxUploadBytes:     int64(getEnvAsIntOrDefault("MAX_UPLOAD_BYTES", 10<<20)),
			CORSAllowedOrigins: getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Pipeline: PipelineConfig{
			MaxEntities:       getEnvAsIntOrDefault("MAX_ENTITIES_PER_RUN", 27),
			ContactExtraction: getEnvAsBoolOrDefault("CONTACT_EXTRACTION", true),
		},
		LLM: LLMConfig{
			Provider:    provider,
			APIKey:      getEnvOrDefault("LLM_API_KEY", providerAPIKey(provider)),
			Model:       getEnvOrDefault("LLM_MODEL", DefaultModel(provider)),
			BaseURL:     getEnvOrDefault("LLM_BASE_URL", ""),
			Temperature: getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsIntOrDefault("LLM_MAX_TOKENS", 1024),
			Timeout:     getEnvAsDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Search: SearchConfig{
			Backend:     strings.ToLower(getEnvOrDefault("SEARCH_BACKEND", BackendScrape)),
			APIKey:      getEnvOrDefault("SEARCH_API_KEY", ""),
			EngineID:    getEnvOrDefault("SEARCH_ENGINE_ID", ""),
			BaseURL:     getEnvOrDefault("SEARCH_BASE_URL", ""),
			MaxResults:  getEnvAsIntOrDefault("SEARCH_MAX_RESULTS", 5),
			MinDelay:    getEnvAsDurationOrDefault("SEARCH_MIN_DELAY", 3*time.Second),
			MaxDelay:    getEnvAsDurationOrDefault("SEARCH_MAX_DELAY", 8*time.Second),
			UserAgent:   getEnvOrDefault("SEARCH_USER_AGENT", ""),
			Timeout:     getEnvAsDurationOrDefault("SEARCH_TIMEOUT", 20*time.Second),
			MaxAttempts: getEnvAsIntOrDefault("SEARCH_MAX_ATTEMPTS", 1),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT_REQUESTS", 10),
			Window:   getEnvAsDurationOrDefault("RATE_LIMIT_WINDOW", time.Minute),
			Store:    strings.ToLower(getEnvOrDefault("RATE_LIMIT_STORE", StoreMemory)),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// DefaultModel returns the model used when LLM_MODEL is unset
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-20241022"
	default:
		return "gemini-1.5-flash"
	}
}

// providerAPIKey returns the provider-specific key variable
func providerAPIKey(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("8s") or plain seconds ("8")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.MaxUploadBytes < 1 {
		return errors.New("max upload bytes must be positive")
	}

	if c.Pipeline.MaxEntities < 1 {
		return errors.New("max entities per run must be at least 1")
	}

	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return errors.New("llm provider must be 'gemini', 'openai' or 'anthropic'")
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("api key is required for llm provider '%s'", c.LLM.Provider)
	}

	if err := c.Search.validate(); err != nil {
		return err
	}

	if c.RateLimit.Requests < 1 {
		return errors.New("rate limit requests must be at least 1")
	}

	if c.RateLimit.Store != StoreRedis && c.RateLimit.Store != StoreMemory {
		return errors.New("rate limit store must be 'redis' or 'memory'")
	}

	if c.RateLimit.Store == StoreRedis && c.RateLimit.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis store")
	}

	return nil
}

func (s SearchConfig) validate() error {
	switch s.Backend {
	case BackendScrape:
	case BackendSerper, BackendBrave:
		if s.APIKey == "" {
			return fmt.Errorf("search api key is required for backend '%s'", s.Backend)
		}
	case BackendGoogleCSE:
		if s.APIKey == "" || s.EngineID == "" {
			return errors.New("search api key and engine id are required for backend 'googlecse'")
		}
	default:
		return errors.New("search backend must be 'scrape', 'serper', 'brave' or 'googlecse'")
	}

	if s.MaxResults < 1 {
		return errors.New("search max results must be at least 1")
	}

	if s.MinDelay < 0 || s.MaxDelay < s.MinDelay {
		return errors.New("search delay bounds are invalid")
	}

	return nil
}
