// Package ratelimit throttles outbound calls per upstream endpoint.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config holds the token bucket settings applied to every key.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig matches the Amadeus self-service test tier.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		Burst:             10,
	}
}

// Limiter hands out one rate.Limiter per key, created on first use.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	cfg      Config
}

// New creates a Limiter. Non-positive settings disable throttling.
func New(cfg Config) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		cfg:      cfg,
	}
}

// Get returns the limiter for key.
func (l *Limiter) Get(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[key]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok = l.limiters[key]; ok {
		return limiter
	}

	limiter = rate.NewLimiter(l.limit(), l.burst())
	l.limiters[key] = limiter
	return limiter
}

// Wait blocks until a call for key is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.Get(key).Wait(ctx)
}

func (l *Limiter) limit() rate.Limit {
	if l.cfg.RequestsPerSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(l.cfg.RequestsPerSecond)
}

func (l *Limiter) burst() int {
	if l.cfg.Burst < 1 {
		return 1
	}
	return l.cfg.Burst
}
