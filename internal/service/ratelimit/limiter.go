// Package ratelimit bounds outbound request rate per upstream with a token
// bucket. Acquire never fails, it only delays.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter is a token bucket for one upstream: capacity R requests per rolling
// minute, refilled continuously at R/60 tokens per second.
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	last       time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures Limiter.
type Option func(*Limiter)

// WithClock overrides the time source and sleeper, for tests.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Limiter) {
		l.now = now
		l.sleep = sleep
	}
}

// New creates a limiter allowing perMinute requests per rolling minute.
func New(perMinute int, opts ...Option) (*Limiter, error) {
	if perMinute <= 0 {
		return nil, fmt.Errorf("ratelimit: rate must be positive, got %d", perMinute)
	}
	l := &Limiter{
		tokens:     float64(perMinute),
		capacity:   float64(perMinute),
		refillRate: float64(perMinute) / 60.0,
		now:        time.Now,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.last = l.now()
	return l, nil
}

func (l *Limiter) refill() {
	now := l.now()
	elapsed := now.Sub(l.last).Seconds()
	if elapsed > 0 {
		l.tokens += elapsed * l.refillRate
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
		l.last = now
	}
}

// Allow consumes a token if one is available, without waiting.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// Acquire blocks until a token is available or ctx is done. Each wait is
// sized to the current token deficit rather than polled at a fixed interval.
// Returns the total time spent waiting.
func (l *Limiter) Acquire(ctx context.Context) (time.Duration, error) {
	var waited time.Duration
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= 1 {
			l.tokens--
			l.mu.Unlock()
			return waited, nil
		}
		deficit := 1 - l.tokens
		wait := time.Duration(deficit / l.refillRate * float64(time.Second))
		l.mu.Unlock()

		if err := l.sleep(ctx, wait); err != nil {
			return waited, err
		}
		waited += wait
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
