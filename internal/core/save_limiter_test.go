package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSaveLimiter_AcquireRelease(t *testing.T) {
	limiter := NewSaveLimiter(2, time.Second)
	ctx := context.Background()

	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("initial ActiveCount = %d, want 0", got)
	}

	for i := 0; i < 2; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d failed: %v", i, err)
		}
	}
	if got := limiter.Status(); got.Active != 2 || got.Available != 0 {
		t.Errorf("Status = %+v, want 2 active and 0 available", got)
	}

	limiter.Release()
	limiter.Release()

	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("after Release, ActiveCount = %d, want 0", got)
	}
}

func TestSaveLimiter_TimeoutWhenFull(t *testing.T) {
	limiter := NewSaveLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	err := limiter.Acquire(ctx)
	if !errors.Is(err, ErrTooManySaves) {
		t.Errorf("Acquire on full limiter = %v, want ErrTooManySaves", err)
	}
}

func TestSaveLimiter_CancelledContext(t *testing.T) {
	limiter := NewSaveLimiter(1, time.Second)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire with cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestSaveLimiter_Defaults(t *testing.T) {
	limiter := NewSaveLimiter(0, 0)
	if got := limiter.MaxConcurrent(); got != DefaultMaxConcurrentSaves {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentSaves)
	}
}

func TestSaveLimiter_WaitForDrain(t *testing.T) {
	limiter := NewSaveLimiter(3, time.Second)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
			limiter.Release()
		}()
	}

	drainCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := limiter.WaitForDrain(drainCtx); err != nil {
		t.Errorf("WaitForDrain = %v, want nil", err)
	}
	wg.Wait()

	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount after drain = %d, want 0", got)
	}
}
