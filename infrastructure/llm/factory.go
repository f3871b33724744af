// ABOUTME: Builds the configured text generator from LLM configuration
// ABOUTME: Each provider implements the same single-method TextGenerator contract

package llm

import (
	"fmt"

	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/infrastructure/llm/anthropic"
	"enrichment-app-api/infrastructure/llm/gemini"
	"enrichment-app-api/infrastructure/llm/openai"
	"enrichment-app-api/pkg/config"
)

// NewTextGenerator returns the provider selected by cfg.Provider
func NewTextGenerator(cfg config.LLMConfig) (interfaces.TextGenerator, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		client, err := gemini.New(gemini.Options{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		client, err := openai.New(openai.Options{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderAnthropic:
		client, err := anthropic.New(anthropic.Options{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
