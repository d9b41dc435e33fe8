// Package ratelimit provides admission control for outbound catalog API requests.
//
// # Overview
//
// Two limiters are provided:
//
//   - Limiter: a blocking sliding-window limiter that caps the number of
//     requests admitted within a trailing time window
//   - ConcurrentLimiter: a semaphore that caps simultaneous in-flight requests
//
// # Sliding Window
//
// The Limiter records the timestamp of every admitted request and prunes
// entries older than the window before each decision. When the window is
// full, Acquire sleeps until the oldest entry expires and then re-contends:
//
//	limiter := ratelimit.New(60, time.Minute) // 60 requests per minute
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err // context cancelled while waiting
//	}
//	// request admitted
//
// Because the lock is released during the sleep, two waiters woken by the
// same expiry may race to admit. The window bound is therefore soft: a
// brief overshoot of at most the number of concurrent waiters is possible.
// Callers must not assume FIFO admission.
//
// # Concurrent Limiter
//
// The concurrent limiter bounds in-flight requests using a channel semaphore:
//
//	inflight := ratelimit.NewConcurrentLimiter(10)
//	if err := inflight.Acquire(ctx); err != nil {
//	    return err
//	}
//	defer inflight.Release()
//
// # Thread Safety
//
// Both limiters are safe for concurrent use. The sliding window is the only
// shared mutable state and is guarded by a single mutex; all reads and
// writes happen under it except the deliberate sleep in Acquire.
package ratelimit
