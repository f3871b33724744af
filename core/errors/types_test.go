package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "query",
		Message: "is required",
	}

	expected := "validation error on field 'query': is required"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestColumnNotFoundError_Error(t *testing.T) {
	err := &ColumnNotFoundError{
		Column:    "company",
		Available: []string{"name", "city"},
	}

	expected := "column 'company' not found (available: name, city)"
	if err.Error() != expected {
		t.Errorf("ColumnNotFoundError.Error() = %v, want %v", err.Error(), expected)
	}

	bare := &ColumnNotFoundError{Column: "company"}
	if bare.Error() != "column 'company' not found" {
		t.Errorf("ColumnNotFoundError.Error() = %v", bare.Error())
	}
}

func TestExternalAPIError_Error(t *testing.T) {
	err := &ExternalAPIError{
		StatusCode: 503,
		Message:    "service unavailable",
		API:        "serper",
	}

	expected := "external API error from serper: 503 - service unavailable"
	if err.Error() != expected {
		t.Errorf("ExternalAPIError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Field: "file", Message: "missing"}) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if !IsValidation(&ColumnNotFoundError{Column: "x"}) {
		t.Error("IsValidation should return true for ColumnNotFoundError")
	}
	if IsValidation(errors.New("some other error")) {
		t.Error("IsValidation should return false for plain errors")
	}
}

func TestIsColumnNotFound_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("extract entities: %w", &ColumnNotFoundError{Column: "company"})

	if !IsColumnNotFound(wrapped) {
		t.Error("IsColumnNotFound should return true for wrapped ColumnNotFoundError")
	}
}

func TestPerEntityErrors_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")

	searchErr := &SearchError{Backend: "brave", Query: "acme ceo", Cause: cause}
	if !errors.Is(searchErr, cause) {
		t.Error("SearchError should unwrap to its cause")
	}
	if !IsSearch(fmt.Errorf("entity acme: %w", searchErr)) {
		t.Error("IsSearch should see through wrapping")
	}

	extractionErr := &ExtractionError{Entity: "Acme", Cause: cause}
	if !errors.Is(extractionErr, cause) {
		t.Error("ExtractionError should unwrap to its cause")
	}
	if IsSearch(extractionErr) {
		t.Error("ExtractionError must not be reported as a search error")
	}
	if !IsExtraction(extractionErr) {
		t.Error("IsExtraction should return true for ExtractionError")
	}
}

func TestTemplateGenerationError(t *testing.T) {
	cause := &ExternalAPIError{StatusCode: 502, API: "gemini"}
	err := &TemplateGenerationError{Query: "find the ceo", Cause: cause}

	if !IsTemplateGeneration(err) {
		t.Error("IsTemplateGeneration should return true")
	}
	if !IsExternalAPI(err) {
		t.Error("TemplateGenerationError should unwrap to the external API error")
	}
	if err.Error() != "failed to generate search query template: external API error from gemini: 502 - " {
		t.Errorf("TemplateGenerationError.Error() = %v", err.Error())
	}
}

func TestIsUpstreamUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("bad prompt"), false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"api 503", &ExternalAPIError{StatusCode: 503}, true},
		{"api 429", &ExternalAPIError{StatusCode: 429}, true},
		{"api 400", &ExternalAPIError{StatusCode: 400}, false},
		{"wrapped in template error", &TemplateGenerationError{Cause: &ExternalAPIError{StatusCode: 500}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUpstreamUnavailable(tt.err); got != tt.want {
				t.Errorf("IsUpstreamUnavailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapError_PreservesOriginalError(t *testing.T) {
	originalErr := &ValidationError{Field: "file", Message: "empty"}
	wrappedErr := WrapError(originalErr, "parse upload")

	if wrappedErr == nil {
		t.Fatal("WrapError should not return nil for non-nil error")
	}

	expectedMsg := "parse upload: validation error on field 'file': empty"
	if wrappedErr.Error() != expectedMsg {
		t.Errorf("WrapError message = %v, want %v", wrappedErr.Error(), expectedMsg)
	}

	if !IsValidation(wrappedErr) {
		t.Error("Wrapped error should still be identifiable as ValidationError")
	}
}

func TestWrapError_HandlesNilError(t *testing.T) {
	if WrapError(nil, "this should not happen") != nil {
		t.Error("WrapError should return nil when wrapping nil error")
	}
}
