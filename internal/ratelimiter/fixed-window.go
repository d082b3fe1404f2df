package ratelimiter

import (
	"sync"
	"time"
)

type counter struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter allows limit requests per key in each window.
// Counters are kept per key and expire lazily.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients   map[string]*counter // key: client IP
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*counter),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow counts a request for key. When the window is exhausted it returns
// false and the time left until the window resets.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.sweep(now)
		rl.clients[key] = &counter{start: now, count: 1}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, w.start.Add(rl.window).Sub(now)
}

// sweep drops expired windows at most once per window. Caller holds the
// lock.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for k, w := range rl.clients {
		if now.Sub(w.start) >= rl.window {
			delete(rl.clients, k)
		}
	}
}
