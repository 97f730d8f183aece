// Package ratelimiter throttles outbound calls to a fixed number per interval.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits how often an operation may run.
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows up to limit calls per interval window and blocks callers beyond that.
// It is safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter creates a RateLimiter. A non-positive limit disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Wait reserves a slot, sleeping until the next window when the current one is full.
// It returns ctx.Err() if the context ends first; the reserved slot is kept.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	sleep := rl.reserve()
	if sleep <= 0 {
		return nil
	}

	slog.Debug("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve counts the call and returns how long the caller has to wait for its window.
func (rl *RateLimiter) reserve() time.Duration {
	if rl.limit <= 0 {
		return 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for now.Sub(rl.lastReset) >= rl.interval {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}

	rl.count++
	if rl.count <= rl.limit {
		return 0
	}

	// Calls beyond the limit are pushed into later windows.
	windows := (rl.count - 1) / rl.limit
	return rl.lastReset.Add(time.Duration(windows) * rl.interval).Sub(now)
}
