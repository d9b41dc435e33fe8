package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// defaultRetryAfter is used when a 429 arrives without a usable
// Retry-After header.
const defaultRetryAfter = 60 * time.Second

// Classify maps a completed non-2xx response to a typed error. It is a pure
// function of its inputs: no I/O, no side effects.
//
// Status mapping:
//
//	401       -> KindAuthentication
//	404       -> KindNotFound
//	429       -> KindRateLimited (Retry-After header, default 60s)
//	other 4xx -> KindBadRequest
//	5xx       -> KindServerError
//
// The message prefers a structured "message" field from the body, then the
// raw body text, then a generic "HTTP <code> error" string.
func Classify(statusCode int, header http.Header, body []byte, requestID string) *APIError {
	apiErr := &APIError{
		Message:    extractMessage(statusCode, body),
		StatusCode: statusCode,
		RequestID:  requestID,
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		apiErr.Kind = KindAuthentication
	case statusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case statusCode == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimited
		apiErr.RetryAfter = retryAfterOrDefault(header)
	case statusCode >= 400 && statusCode < 500:
		apiErr.Kind = KindBadRequest
	default:
		apiErr.Kind = KindServerError
	}

	return apiErr
}

// extractMessage pulls the best available description out of an error body.
func extractMessage(statusCode int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d error", statusCode)
}

// retryAfterOrDefault parses the Retry-After header, falling back to the
// documented 60 second default when absent or unparseable.
func retryAfterOrDefault(header http.Header) time.Duration {
	if d := ParseRetryAfter(header.Get("Retry-After")); d > 0 {
		return d
	}
	return defaultRetryAfter
}

// ParseRetryAfter parses a Retry-After header value in either delay-seconds
// or HTTP-date format. Returns 0 when the value is empty, unparseable, or
// in the past.
func ParseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}

	return 0
}
