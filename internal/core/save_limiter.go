package core

// save_limiter.go bounds concurrent preference writes.
//
// Every column change ends in a PreferenceStore.Save. A burst of drags from
// many browsers must not exhaust the store's connections (the SQLite store
// runs on a single one), so writes take a slot first. When all slots are
// taken a write waits up to maxWait before failing with ErrTooManySaves.
//
// WaitForDrain lets shutdown wait for in-flight writes.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManySaves is returned when no write slot frees up in time.
var ErrTooManySaves = errors.New("too many concurrent preference saves, please try again later")

// DefaultMaxConcurrentSaves is the default limit for parallel writes.
const DefaultMaxConcurrentSaves = 8

// DefaultSaveWait is how long a write waits for a slot before rejecting.
const DefaultSaveWait = 5 * time.Second

// SaveLimiter controls concurrent preference writes using a semaphore.
type SaveLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewSaveLimiter creates a limiter that allows at most maxConcurrent
// simultaneous writes. Non-positive arguments select the defaults.
func NewSaveLimiter(maxConcurrent int, maxWait time.Duration) *SaveLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentSaves
	}
	if maxWait <= 0 {
		maxWait = DefaultSaveWait
	}

	return &SaveLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a write slot.
// The caller MUST call Release() once the write completes (use defer).
func (l *SaveLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManySaves
	}
}

// Release frees a slot taken by Acquire.
func (l *SaveLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of writes in flight.
func (l *SaveLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *SaveLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// WaitForDrain blocks until no write is in flight or ctx is done.
func (l *SaveLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SaveLimiterStatus is a snapshot of the limiter.
type SaveLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for the health endpoint.
func (l *SaveLimiter) Status() SaveLimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return SaveLimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
