package ratelimit

import "context"

// ConcurrentLimiter caps the number of simultaneous in-flight requests.
//
// It is a counting semaphore built on a buffered channel, which lets
// Acquire block with context cancellation instead of rejecting when the
// cap is reached.
//
// A nil *ConcurrentLimiter is valid and imposes no limit.
type ConcurrentLimiter struct {
	slots chan struct{}
}

// NewConcurrentLimiter creates a limiter allowing at most limit requests in
// flight. A non-positive limit returns nil, meaning unlimited.
func NewConcurrentLimiter(limit int) *ConcurrentLimiter {
	if limit <= 0 {
		return nil
	}
	return &ConcurrentLimiter{slots: make(chan struct{}, limit)}
}

// Acquire blocks until a concurrency slot is available or ctx is cancelled.
// Every successful Acquire must be paired with a Release:
//
//	if err := inflight.Acquire(ctx); err != nil {
//	    return err
//	}
//	defer inflight.Release()
func (cl *ConcurrentLimiter) Acquire(ctx context.Context) error {
	if cl == nil {
		return nil
	}
	select {
	case cl.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire acquires a slot without blocking. Returns false if the limit
// is reached.
func (cl *ConcurrentLimiter) TryAcquire() bool {
	if cl == nil {
		return true
	}
	select {
	case cl.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees a slot acquired by Acquire or TryAcquire.
func (cl *ConcurrentLimiter) Release() {
	if cl == nil {
		return
	}
	select {
	case <-cl.slots:
	default:
		// Release without a matching Acquire; ignore rather than block.
	}
}

// Current returns the number of requests currently in flight.
func (cl *ConcurrentLimiter) Current() int {
	if cl == nil {
		return 0
	}
	return len(cl.slots)
}

// Limit returns the configured cap, or 0 for unlimited.
func (cl *ConcurrentLimiter) Limit() int {
	if cl == nil {
		return 0
	}
	return cap(cl.slots)
}
