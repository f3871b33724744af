// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP responses with a flat {"error": message} body

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "enrichment-app-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// StatusClientClosedRequest is used when the client disconnected mid-run
const StatusClientClosedRequest = 499

// ErrorBody is the error payload for every non-2xx response
type ErrorBody struct {
	status  int
	Message string `json:"error" doc:"Human readable error message"`
}

// Error implements the error interface
func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorBody) GetStatus() int {
	return e.status
}

// NewErrorBody builds an error payload. Framework validation failures (422)
// are reported as 400. Details are only appended for client errors.
func NewErrorBody(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if status < http.StatusInternalServerError && len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, err.Error())
			}
		}
		if len(details) > 0 {
			msg = msg + ": " + strings.Join(details, "; ")
		}
	}

	return &ErrorBody{status: status, Message: msg}
}

func init() {
	huma.NewError = NewErrorBody
}

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return huma.NewError(StatusClientClosedRequest, "client closed request")
	}

	if apperrors.IsValidation(err) {
		return huma.NewError(http.StatusBadRequest, err.Error())
	}

	if apperrors.IsTemplateGeneration(err) {
		if apperrors.IsUpstreamUnavailable(err) {
			return huma.NewError(http.StatusServiceUnavailable, err.Error())
		}
		return huma.NewError(http.StatusInternalServerError, err.Error())
	}

	if apperrors.IsUpstreamUnavailable(err) {
		return huma.NewError(http.StatusServiceUnavailable, "upstream service unavailable")
	}

	return huma.NewError(http.StatusInternalServerError, "internal server error")
}
