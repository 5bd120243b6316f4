package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitError is returned when a client exceeds its request budget.
type RateLimitError struct {
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %d requests per minute, retry after %s", e.Limit, e.RetryAfter.Round(time.Second))
}

type clientUsage struct {
	count       int
	windowStart time.Time
}

// RateLimiter enforces a per-client requests-per-minute budget over a
// fixed one minute window.
type RateLimiter struct {
	mu                sync.Mutex
	clients           map[string]*clientUsage
	requestsPerMinute int
	now               func() time.Time
}

// NewRateLimiter creates a rate limiter with the given per-minute budget.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		clients:           make(map[string]*clientUsage),
		requestsPerMinute: requestsPerMinute,
		now:               time.Now,
	}
}

// Allow records a request for the client and returns a RateLimitError if
// the client is over budget for the current window.
func (rl *RateLimiter) Allow(client string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	usage, ok := rl.clients[client]
	if !ok || now.Sub(usage.windowStart) >= time.Minute {
		usage = &clientUsage{windowStart: now}
		rl.clients[client] = usage
	}

	if usage.count >= rl.requestsPerMinute {
		retry := usage.windowStart.Add(time.Minute).Sub(now)
		return &RateLimitError{Limit: rl.requestsPerMinute, RetryAfter: retry}
	}

	usage.count++
	return nil
}

// Reset clears all recorded usage.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.clients = make(map[string]*clientUsage)
}
