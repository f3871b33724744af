// ABOUTME: Error types and handling for the enrichment library
// ABOUTME: Classifies pipeline errors so callers can pick exit codes or statuses

package enrichlib

import (
	"context"
	"errors"
	"fmt"

	apperrors "enrichment-app-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates bad input: file, query or column
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeUpstream indicates an unavailable LLM or search service
	ErrorTypeUpstream ErrorType = "upstream"

	// ErrorTypeCancelled indicates the caller cancelled the run
	ErrorTypeCancelled ErrorType = "cancelled"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Classify returns the category of an error returned by the client
func Classify(err error) ErrorType {
	var libErr *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &libErr):
		return libErr.Type
	case errors.Is(err, context.Canceled):
		return ErrorTypeCancelled
	case apperrors.IsValidation(err):
		return ErrorTypeValidation
	case apperrors.IsUpstreamUnavailable(err), apperrors.IsTemplateGeneration(err):
		return ErrorTypeUpstream
	default:
		return ErrorTypeInternal
	}
}
