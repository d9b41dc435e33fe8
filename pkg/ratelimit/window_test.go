package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

// ============================================================================
// Sliding Window Limiter Tests
// ============================================================================

func TestLimiter_AdmitsUpToLimit(t *testing.T) {
	limiter := New(3, time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d failed: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("First 3 acquires should not block, took %v", elapsed)
	}

	status := limiter.Status()
	if status.RequestsMade != 3 {
		t.Errorf("Expected 3 requests made, got %d", status.RequestsMade)
	}
	if status.RequestsRemaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", status.RequestsRemaining)
	}
}

func TestLimiter_BlocksWhenFull(t *testing.T) {
	limiter := New(2, 500*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	// Third acquire must wait for the oldest entry to expire.
	start := time.Now()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(start)

	if elapsed < 300*time.Millisecond {
		t.Errorf("Third acquire returned too early: %v", elapsed)
	}
	if elapsed > 700*time.Millisecond {
		t.Errorf("Third acquire blocked too long: %v", elapsed)
	}
}

func TestLimiter_ConcurrentCallers(t *testing.T) {
	// Three concurrent callers against max=2: two admit immediately, the
	// third only after roughly one window.
	limiter := New(2, 500*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	var mu sync.Mutex
	var delays []time.Duration

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(ctx); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			mu.Lock()
			delays = append(delays, time.Since(start))
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(delays) != 3 {
		t.Fatalf("Expected 3 admissions, got %d", len(delays))
	}

	fast, slow := 0, 0
	for _, d := range delays {
		if d < 200*time.Millisecond {
			fast++
		} else {
			slow++
		}
	}
	if fast != 2 {
		t.Errorf("Expected 2 immediate admissions, got %d (delays %v)", fast, delays)
	}
	if slow != 1 {
		t.Errorf("Expected 1 delayed admission, got %d (delays %v)", slow, delays)
	}
}

func TestLimiter_WindowBoundUnderContention(t *testing.T) {
	// Hammer the limiter from many goroutines and verify the soft bound:
	// admissions per trailing window never exceed the limit by more than
	// the number of concurrent waiters.
	const (
		maxRequests = 5
		callers     = 8
		perCaller   = 3
	)
	window := 300 * time.Millisecond
	limiter := New(maxRequests, window)
	ctx := context.Background()

	var mu sync.Mutex
	var admissions []time.Time

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perCaller; j++ {
				if err := limiter.Acquire(ctx); err != nil {
					t.Errorf("Acquire failed: %v", err)
					return
				}
				mu.Lock()
				admissions = append(admissions, time.Now())
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Count admissions in every trailing window anchored at each admission.
	for i, anchor := range admissions {
		count := 0
		for _, ts := range admissions {
			diff := anchor.Sub(ts)
			if diff >= 0 && diff < window {
				count++
			}
		}
		if count > maxRequests+callers {
			t.Fatalf("Window anchored at admission %d held %d admissions, limit %d with %d callers",
				i, count, maxRequests, callers)
		}
	}
}

func TestLimiter_WaitTime(t *testing.T) {
	limiter := New(1, time.Second)
	ctx := context.Background()

	if wait := limiter.WaitTime(); wait != 0 {
		t.Errorf("Expected zero wait on fresh limiter, got %v", wait)
	}

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	wait := limiter.WaitTime()
	if wait <= 0 || wait > time.Second {
		t.Errorf("Expected wait in (0, 1s], got %v", wait)
	}

	// WaitTime must not mutate state: status is unchanged.
	status := limiter.Status()
	if status.RequestsMade != 1 {
		t.Errorf("WaitTime mutated window: %d requests recorded", status.RequestsMade)
	}
}

func TestLimiter_StatusIdempotent(t *testing.T) {
	limiter := New(5, time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatal(err)
		}
	}

	// Repeated snapshots without intervening acquires: remaining must be
	// stable or growing as entries age out, never shrinking.
	prev := limiter.Status().RequestsRemaining
	for i := 0; i < 10; i++ {
		cur := limiter.Status().RequestsRemaining
		if cur < prev {
			t.Fatalf("RequestsRemaining decreased from %d to %d without an acquire", prev, cur)
		}
		prev = cur
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLimiter_Reset(t *testing.T) {
	limiter := New(2, time.Minute)
	ctx := context.Background()

	limiter.Acquire(ctx)
	limiter.Acquire(ctx)
	limiter.Reset()

	status := limiter.Status()
	if status.RequestsMade != 0 {
		t.Errorf("Expected empty window after reset, got %d", status.RequestsMade)
	}
	if wait := limiter.WaitTime(); wait != 0 {
		t.Errorf("Expected zero wait after reset, got %v", wait)
	}
}

func TestLimiter_AcquireCancelled(t *testing.T) {
	limiter := New(1, time.Minute)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := limiter.Acquire(ctx)
	if err == nil {
		t.Fatal("Expected context error from blocked acquire")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("Cancelled acquire took too long to return")
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	limiter := New(2, 200*time.Millisecond)
	ctx := context.Background()

	limiter.Acquire(ctx)
	limiter.Acquire(ctx)

	time.Sleep(250 * time.Millisecond)

	// Old entries are outside the window; both slots free again.
	status := limiter.Status()
	if status.RequestsMade != 0 {
		t.Errorf("Expected pruned window, got %d requests made", status.RequestsMade)
	}

	start := time.Now()
	limiter.Acquire(ctx)
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Acquire after window slide should be immediate, took %v", elapsed)
	}
}

func TestNew_NormalizesArguments(t *testing.T) {
	limiter := New(0, 0)
	if limiter.MaxRequests() != 1 {
		t.Errorf("Expected max requests normalized to 1, got %d", limiter.MaxRequests())
	}
	if limiter.Window() != time.Second {
		t.Errorf("Expected window normalized to 1s, got %v", limiter.Window())
	}
}
