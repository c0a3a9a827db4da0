package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorKind labels an error for metrics and banner handling.
type ErrorKind string

const (
	// KindNetwork means the request never completed.
	KindNetwork ErrorKind = "network"

	// KindAPI means the server answered with a non-2xx status.
	KindAPI ErrorKind = "api"

	// KindValidation means a client-side precondition failed and no
	// request was sent.
	KindValidation ErrorKind = "validation"
)

// NetworkError wraps a transport failure: DNS, refused connection,
// timeout. The request never reached a response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response carrying the server-supplied message.
type APIError struct {
	StatusCode int
	Message    string
	Resource   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error on %s (status %d): %s", e.Resource, e.StatusCode, e.Message)
}

// Unauthorized reports whether the error is a 401, which clears the
// session and redirects instead of showing a banner.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// ValidationError is a failed client-side precondition. The submit is
// blocked and no request is dispatched.
type ValidationError struct {
	// Fields maps struct field name to the failed validation tag.
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// newValidationError converts validator output into a ValidationError.
func newValidationError(err error) *ValidationError {
	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return &ValidationError{Fields: fields, Err: err}
}

// KindOf classifies an error for the erp_errors_total metric.
func KindOf(err error) ErrorKind {
	switch err.(type) {
	case *NetworkError:
		return KindNetwork
	case *ValidationError:
		return KindValidation
	default:
		return KindAPI
	}
}

// messageFields is the preference order for extracting a human-readable
// message from an error body. The API is inconsistent about which one it
// uses per endpoint.
var messageFields = []string{"error", "message", "erro", "detalhes"}

// extractMessage pulls a human-readable message out of an error body,
// falling back to the HTTP status text when the body is not parseable or
// carries none of the known fields.
func extractMessage(body []byte, statusCode int) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, field := range messageFields {
			if msg, ok := payload[field].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(statusCode)
}
