// ABOUTME: Gemini text generator built on the Google Gen AI Go SDK
// ABOUTME: Returns the concatenated text parts of the first candidate

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "enrichment-app-api/core/errors"
	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 60 * time.Second
	apiName        = "gemini"
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

// Client implements TextGenerator against the Gemini API
type Client struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// New creates a Gemini client
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(opts.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	temperature := float32(opts.Temperature)
	generation := &genai.GenerateContentConfig{Temperature: &temperature}
	if opts.MaxTokens > 0 {
		generation.MaxOutputTokens = int32(opts.MaxTokens)
	}

	return &Client{client: client, model: opts.Model, config: generation}, nil
}

// Name identifies the provider
func (c *Client) Name() string {
	return apiName
}

// GenerateText sends a single-turn prompt
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &apperrors.ExternalAPIError{StatusCode: apiErr.Code, Message: apiErr.Message, API: apiName}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &apperrors.ExternalAPIError{StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message, API: apiName}
	}
	return err
}
