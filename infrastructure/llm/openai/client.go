// ABOUTME: OpenAI-compatible text generator built on the go-openai client
// ABOUTME: Works with any server that speaks the chat completions format via BaseURL

package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "enrichment-app-api/core/errors"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
	apiName        = "openai"
)

// Options configures the client
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration

	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
}

// Client implements TextGenerator against the chat completions API
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// New creates an OpenAI client
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if baseURL := strings.TrimRight(opts.BaseURL, "/"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg.HTTPClient = httpClient

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   opts.MaxTokens,
	}, nil
}

// Name identifies the provider
func (c *Client) Name() string {
	return apiName
}

// GenerateText sends the prompt as a single user message
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &apperrors.ExternalAPIError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			API:        apiName,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &apperrors.ExternalAPIError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    reqErr.Error(),
			API:        apiName,
		}
	}
	return err
}
