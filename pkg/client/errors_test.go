package client

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// Error Taxonomy Tests
// ============================================================================

func TestAPIError_Error(t *testing.T) {
	apiErr := &APIError{
		Kind:       KindNotFound,
		Message:    "release not found",
		StatusCode: 404,
		RequestID:  "abc-123",
	}

	msg := apiErr.Error()
	for _, want := range []string{"not_found", "release not found", "404", "abc-123"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error string %q missing %q", msg, want)
		}
	}
}

func TestAPIError_ErrorWithoutStatus(t *testing.T) {
	apiErr := &APIError{
		Kind:    KindNetworkError,
		Message: "connection refused",
	}
	msg := apiErr.Error()
	if strings.Contains(msg, "status") {
		t.Errorf("Transport error should omit status, got %q", msg)
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	apiErr := &APIError{Kind: KindNetworkError, Message: "connection error", Cause: cause}

	wrapped := fmt.Errorf("fetch release: %w", apiErr)

	if !errors.Is(wrapped, cause) {
		t.Error("Expected cause to survive wrapping")
	}

	extracted, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("Expected AsAPIError to find the APIError through the chain")
	}
	if extracted.Kind != KindNetworkError {
		t.Errorf("Expected network kind, got %s", extracted.Kind)
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		pred func(error) bool
	}{
		{KindAuthentication, IsAuthentication},
		{KindNotFound, IsNotFound},
		{KindBadRequest, IsBadRequest},
		{KindRateLimited, IsRateLimited},
		{KindServerError, IsServerError},
		{KindNetworkError, IsNetworkError},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &APIError{Kind: tc.kind, Message: "x"})
			if !tc.pred(err) {
				t.Errorf("Predicate for %s did not match", tc.kind)
			}
			// Each predicate must reject every other kind.
			for _, other := range tests {
				if other.kind == tc.kind {
					continue
				}
				if tc.pred(&APIError{Kind: other.kind}) {
					t.Errorf("Predicate for %s matched %s", tc.kind, other.kind)
				}
			}
		})
	}

	if IsNotFound(errors.New("plain error")) {
		t.Error("Predicate matched a non-API error")
	}
	if IsNotFound(nil) {
		t.Error("Predicate matched nil")
	}
}

func TestErrorKind_String(t *testing.T) {
	kinds := map[ErrorKind]string{
		KindAuthentication: "authentication",
		KindNotFound:       "not_found",
		KindBadRequest:     "bad_request",
		KindRateLimited:    "rate_limited",
		KindServerError:    "server_error",
		KindNetworkError:   "network_error",
		ErrorKind(99):      "unknown",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("Kind %d: expected %q, got %q", kind, want, kind.String())
		}
	}
}

func TestRateLimitedCarriesRetryAfter(t *testing.T) {
	apiErr := &APIError{
		Kind:       KindRateLimited,
		Message:    "slow down",
		StatusCode: 429,
		RetryAfter: 30 * time.Second,
	}

	extracted, ok := AsAPIError(apiErr)
	if !ok {
		t.Fatal("AsAPIError failed")
	}
	if extracted.RetryAfter != 30*time.Second {
		t.Errorf("Expected 30s retry-after, got %v", extracted.RetryAfter)
	}
}
