package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a blocking sliding-window rate limiter.
//
// It tracks the timestamps of admitted requests, oldest first. A request is
// admitted when fewer than maxRequests timestamps remain inside the trailing
// window after pruning. Otherwise the caller sleeps until the oldest entry
// expires and re-runs the whole admission procedure, since other callers may
// have mutated the window in the meantime.
//
// # Algorithm
//
//  1. Prune timestamps older than now - window
//  2. If fewer than maxRequests remain: record now, admit
//  3. Otherwise compute sleep = window - (now - oldest), release the lock,
//     sleep, and retry from step 1
//
// The lock is released during the sleep so unrelated callers are not
// blocked. The admission bound is soft as a consequence: waiters woken by
// the same expiry race for the freed slot and at most one extra request per
// concurrent waiter can slip into a window.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu     sync.Mutex
	stamps []time.Time
}

// Status is a point-in-time snapshot of the limiter state.
type Status struct {
	// RequestsMade is the number of requests admitted in the current window.
	RequestsMade int

	// RequestsRemaining is how many more requests can be admitted
	// immediately.
	RequestsRemaining int

	// Window is the configured window duration.
	Window time.Duration

	// ResetAt is when the oldest recorded request leaves the window. If no
	// requests are recorded it is the time the snapshot was taken.
	ResetAt time.Time
}

// New creates a sliding-window limiter admitting at most maxRequests per
// trailing window. Non-positive arguments are normalized to 1 request and
// one second respectively.
func New(maxRequests int, window time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		stamps:      make([]time.Time, 0, maxRequests),
	}
}

// Acquire blocks until admitting one more request keeps the trailing window
// within its limit, then records the admission. It returns early with the
// context error if ctx is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()
		l.pruneLocked(now)

		if len(l.stamps) < l.maxRequests {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return nil
		}

		sleep := l.window - now.Sub(l.stamps[0])
		l.mu.Unlock()

		if sleep <= 0 {
			// Oldest entry expired between the timestamp read and the
			// subtraction; re-run the procedure immediately.
			continue
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// WaitTime returns the delay Acquire would currently impose, without
// mutating the window. A zero result means a request would be admitted
// immediately.
func (l *Limiter) WaitTime() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.pruneLocked(now)

	if len(l.stamps) < l.maxRequests {
		return 0
	}

	wait := l.window - now.Sub(l.stamps[0])
	if wait < 0 {
		return 0
	}
	return wait
}

// Status returns a non-blocking snapshot of the limiter.
func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.pruneLocked(now)

	status := Status{
		RequestsMade:      len(l.stamps),
		RequestsRemaining: l.maxRequests - len(l.stamps),
		Window:            l.window,
		ResetAt:           now,
	}
	if len(l.stamps) > 0 {
		status.ResetAt = l.stamps[0].Add(l.window)
	}
	return status
}

// MaxRequests returns the configured per-window request limit.
func (l *Limiter) MaxRequests() int {
	return l.maxRequests
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Reset clears all recorded admissions. It exists for test isolation and is
// not used by production call paths.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stamps = l.stamps[:0]
}

// pruneLocked drops timestamps that have left the trailing window.
// Caller must hold the lock.
func (l *Limiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}
