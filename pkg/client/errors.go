package client

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an API failure. The set is closed:
// every error produced by this package carries exactly one of these kinds,
// so callers can switch exhaustively instead of probing for fields.
type ErrorKind int

const (
	// KindAuthentication is an invalid or missing credential (401).
	KindAuthentication ErrorKind = iota

	// KindNotFound is an unknown resource (404).
	KindNotFound

	// KindBadRequest is a malformed request (other 4xx).
	KindBadRequest

	// KindRateLimited means the server rejected the request for exceeding
	// its rate limit (429). RetryAfter carries the server's hint.
	KindRateLimited

	// KindServerError is a 5xx response, treated as transient by the retry
	// strategy.
	KindServerError

	// KindNetworkError is a transport failure: timeout, connection error,
	// or any other I/O problem before a response was completed.
	KindNetworkError
)

// String returns the kind's name for logs and audit records.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindRateLimited:
		return "rate_limited"
	case KindServerError:
		return "server_error"
	case KindNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// APIError is the single error type surfaced by the dispatch engine.
type APIError struct {
	// Kind is the error category.
	Kind ErrorKind

	// Message is the human-readable description, extracted from the
	// response body when possible.
	Message string

	// StatusCode is the HTTP status code, or 0 for transport failures.
	StatusCode int

	// RequestID is the correlation id of the dispatch that failed.
	RequestID string

	// RetryAfter is the server-provided wait hint. Only set for
	// KindRateLimited.
	RetryAfter time.Duration

	// Cause is the underlying error for transport failures.
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	s := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode > 0 {
		s += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.RequestID != "" {
		s += fmt.Sprintf(" (request %s)", e.RequestID)
	}
	return s
}

// Unwrap returns the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }

// IsNotFound reports whether err is an unknown-resource failure.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsBadRequest reports whether err is a malformed-request failure.
func IsBadRequest(err error) bool { return isKind(err, KindBadRequest) }

// IsRateLimited reports whether err is a server-side rate limit rejection.
func IsRateLimited(err error) bool { return isKind(err, KindRateLimited) }

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool { return isKind(err, KindServerError) }

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool { return isKind(err, KindNetworkError) }

func isKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}
