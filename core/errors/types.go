// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates fatal run errors from per-entity failures and maps cleanly to HTTP statuses

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ValidationError represents invalid or missing request input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ColumnNotFoundError is returned when the selected column is not in the table header
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

// Error implements the error interface
func (e *ColumnNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("column '%s' not found", e.Column)
	}
	return fmt.Sprintf("column '%s' not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// TemplateGenerationError aborts a run when the query template cannot be built
type TemplateGenerationError struct {
	Query string
	Cause error
}

// Error implements the error interface
func (e *TemplateGenerationError) Error() string {
	return fmt.Sprintf("failed to generate search query template: %v", e.Cause)
}

// Unwrap returns the underlying cause
func (e *TemplateGenerationError) Unwrap() error {
	return e.Cause
}

// SearchError is a per-entity web search failure
type SearchError struct {
	Backend string
	Query   string
	Cause   error
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return fmt.Sprintf("search via %s failed: %v", e.Backend, e.Cause)
}

// Unwrap returns the underlying cause
func (e *SearchError) Unwrap() error {
	return e.Cause
}

// ExtractionError is a per-entity information extraction failure
type ExtractionError struct {
	Entity string
	Cause  error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("information extraction for '%s' failed: %v", e.Entity, e.Cause)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExternalAPIError represents a non-success response from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsValidation checks if an error is caused by bad input
func IsValidation(err error) bool {
	var validationErr *ValidationError
	var columnErr *ColumnNotFoundError
	return errors.As(err, &validationErr) || errors.As(err, &columnErr)
}

// IsColumnNotFound checks if an error is a ColumnNotFoundError
func IsColumnNotFound(err error) bool {
	var columnErr *ColumnNotFoundError
	return errors.As(err, &columnErr)
}

// IsTemplateGeneration checks if an error is a TemplateGenerationError
func IsTemplateGeneration(err error) bool {
	var templateErr *TemplateGenerationError
	return errors.As(err, &templateErr)
}

// IsSearch checks if an error is a SearchError
func IsSearch(err error) bool {
	var searchErr *SearchError
	return errors.As(err, &searchErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsUpstreamUnavailable reports network-level or overload failures of an upstream service
func IsUpstreamUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *ExternalAPIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
