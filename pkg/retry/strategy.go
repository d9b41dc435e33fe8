package retry

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"cratedig-hq/cratedig/pkg/client"
)

// DefaultRetryableStatus is the default status allow-list: rate limits and
// transient server-side failures.
var DefaultRetryableStatus = []int{429, 500, 502, 503, 504}

// Strategy is a configurable retry policy for fallible operations.
//
// State per invocation (attempt counter, last error, cumulative delay) lives
// on the stack of Do and is never shared, so one Strategy may be used
// concurrently from many goroutines.
type Strategy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BackoffFactor is the exponential base for the delay schedule.
	BackoffFactor float64

	// MaxDelay caps a single backoff delay.
	MaxDelay time.Duration

	// RetryableStatus is the status-code allow-list. Errors exposing a
	// status outside this set are not retried. Errors without a status
	// code (network failures) are always retryable.
	RetryableStatus map[int]bool

	logger *slog.Logger
}

// New creates a Strategy with the standard defaults: 3 retries, factor 2,
// 60 second delay cap, allow-list {429, 500, 502, 503, 504}.
func New() *Strategy {
	return NewWith(3, 2.0, 60*time.Second, DefaultRetryableStatus)
}

// NewWith creates a Strategy with explicit settings.
func NewWith(maxRetries int, backoffFactor float64, maxDelay time.Duration, retryableStatus []int) *Strategy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoffFactor <= 0 {
		backoffFactor = 2.0
	}
	if maxDelay <= 0 {
		maxDelay = 60 * time.Second
	}
	if len(retryableStatus) == 0 {
		retryableStatus = DefaultRetryableStatus
	}

	allow := make(map[int]bool, len(retryableStatus))
	for _, code := range retryableStatus {
		allow[code] = true
	}

	return &Strategy{
		MaxRetries:      maxRetries,
		BackoffFactor:   backoffFactor,
		MaxDelay:        maxDelay,
		RetryableStatus: allow,
		logger:          slog.Default().With("component", "retry"),
	}
}

// Do runs op until it succeeds, a non-retryable error occurs, or the retry
// budget is exhausted. The most recent error is always returned on failure,
// never swallowed. The backoff sleep honors context cancellation.
func (s *Strategy) Do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt > s.MaxRetries {
			s.logger.Warn("retry budget exhausted",
				"attempts", attempt,
				"max_retries", s.MaxRetries,
				"error", err,
			)
			return lastErr
		}

		if !s.retryable(err) {
			return lastErr
		}

		delay := s.delayFor(attempt, err)
		s.logger.Debug("operation failed, backing off",
			"attempt", attempt,
			"max_retries", s.MaxRetries,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Backoff returns the delay for the given 1-indexed attempt:
// min(factor^(n-1), MaxDelay) plus uniform jitter in [0, 0.25*delay).
func (s *Strategy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	base := math.Pow(s.BackoffFactor, float64(attempt-1))
	delay := time.Duration(base * float64(time.Second))
	if delay > s.MaxDelay || delay < 0 {
		delay = s.MaxDelay
	}

	jitter := time.Duration(rand.Float64() * 0.25 * float64(delay))
	return delay + jitter
}

// delayFor computes the backoff for an attempt, letting a larger
// server-provided Retry-After hint override the computed delay.
func (s *Strategy) delayFor(attempt int, err error) time.Duration {
	delay := s.Backoff(attempt)

	if apiErr, ok := client.AsAPIError(err); ok &&
		apiErr.Kind == client.KindRateLimited && apiErr.RetryAfter > delay {
		hint := apiErr.RetryAfter
		if hint > s.MaxDelay {
			hint = s.MaxDelay
		}
		if hint > delay {
			delay = hint
		}
	}

	return delay
}

// retryable reports whether err is worth another attempt. Errors carrying a
// status code consult the allow-list; everything else (network failures,
// non-API errors) is considered transient.
func (s *Strategy) retryable(err error) bool {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return true
	}
	if apiErr.StatusCode == 0 {
		return true
	}
	return s.RetryableStatus[apiErr.StatusCode]
}
