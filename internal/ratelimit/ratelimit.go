// Package ratelimit implements a per-key token-bucket registry used to
// throttle the public auth endpoints. Keys are normally client IPs.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = time.Minute
	maxIdle         = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out an independent token bucket per key and answers whether
// a request may proceed. Idle buckets are dropped in the background so the
// registry does not grow with every client ever seen.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     rate.Limit
	burst   int
}

func New(rps float64, burst int) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the request identified by key fits the rate limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

func (l *Limiter) cleanupLoop() {
	for range time.Tick(cleanupInterval) {
		l.purge(maxIdle)
	}
}

func (l *Limiter) purge(idle time.Duration) {
	cutoff := time.Now().Add(-idle)
	l.mu.Lock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
	l.mu.Unlock()
}
