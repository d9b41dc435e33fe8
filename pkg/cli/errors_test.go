package cli

import (
	"errors"
	"testing"

	"cratedig-hq/cratedig/pkg/client"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", errors.New("boom"), ExitFailure},
		{"auth", &client.APIError{Kind: client.KindAuthentication}, ExitAuth},
		{"not found", &client.APIError{Kind: client.KindNotFound}, ExitNotFound},
		{"bad request", &client.APIError{Kind: client.KindBadRequest}, ExitUsage},
		{"rate limited", &client.APIError{Kind: client.KindRateLimited}, ExitRateLimit},
		{"server", &client.APIError{Kind: client.KindServerError}, ExitServer},
		{"network", &client.APIError{Kind: client.KindNetworkError}, ExitNetwork},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestExitCode_WrappedAPIError(t *testing.T) {
	wrapped := NewCommandError("release", &client.APIError{Kind: client.KindNotFound})
	if got := ExitCode(wrapped); got != ExitNotFound {
		t.Errorf("Wrapped taxonomy error should still map, got %d", got)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("search", inner)

	if err.Error() != "command search failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError must unwrap to the inner error")
	}
}
