// ABOUTME: JSON helpers for REST integrations built on the HTTPClient interface
// ABOUTME: Non-2xx responses become ExternalAPIError carrying a truncated body

package standard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	apperrors "enrichment-app-api/core/errors"
	"enrichment-app-api/core/interfaces"
)

const maxErrorBody = 512

// EncodeJSON marshals v into a request body
func EncodeJSON(v interface{}) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// DecodeJSON closes the response body after decoding it into v.
// Responses outside 2xx are returned as *ExternalAPIError.
func DecodeJSON(resp interfaces.Response, api string, v interface{}) error {
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return &apperrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(data)),
			API:        api,
		}
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", api, err)
	}
	return nil
}
