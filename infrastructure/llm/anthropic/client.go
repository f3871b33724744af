// ABOUTME: Anthropic text generator built on the official Go SDK
// ABOUTME: API errors are mapped to ExternalAPIError so callers can classify upstream failures

package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "enrichment-app-api/core/errors"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-3-5-haiku-20241022"
	defaultMaxTokens = 1024
	apiName          = "anthropic"
)

// Options configures the client
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client implements TextGenerator with the Messages API
type Client struct {
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
}

// New creates an Anthropic client. The SDK's own retries are disabled;
// a failed call is reported to the caller as is.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	return &Client{
		client:      anthropic.NewClient(reqOpts...),
		model:       anthropic.Model(opts.Model),
		maxTokens:   int64(opts.MaxTokens),
		temperature: opts.Temperature,
	}, nil
}

// Name identifies the provider
func (c *Client) Name() string {
	return apiName
}

// GenerateText sends the prompt as a single user message
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response format: no text blocks")
	}
	return sb.String(), nil
}

func mapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &apperrors.ExternalAPIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Error(),
			API:        apiName,
		}
	}
	return err
}
