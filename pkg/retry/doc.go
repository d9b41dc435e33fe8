// Package retry implements the caller-facing retry policy with exponential
// backoff and jitter.
//
// It is orthogonal to the transport-level retry inside package client: the
// Strategy wraps whole operations (typically Client.Do calls) and inspects
// the typed error to decide whether another attempt is worthwhile.
//
//	strategy := retry.New()
//	err := strategy.Do(ctx, func() error {
//	    _, err := c.Get(ctx, "/releases/1", nil)
//	    return err
//	})
//
// Delay for attempt n (1-indexed) is min(factor^(n-1), MaxDelay) plus
// uniform jitter in [0, 0.25*delay), randomized so that many clients
// recovering from the same outage do not retry in lockstep. When the server
// supplied a Retry-After hint larger than the computed delay, the hint wins
// (still capped at MaxDelay).
package retry
