package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/logger"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests allowed per minute per key.
	RequestsPerMinute int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
	// Now overrides the clock in tests.
	Now func() time.Time
}

// RateLimit returns a Gin middleware that applies per-key sliding-window rate
// limiting. Rejected requests get a RATE_LIMITED error with status 429.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rl := &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    cfg.RequestsPerMinute,
	}

	return func(c *gin.Context) {
		if !rl.allow(cfg.KeyFunc(c), cfg.Now()) {
			appErr := errors.RateLimited(cfg.RequestsPerMinute)
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse(logger.RequestIDFromContext(c.Request.Context())))
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// pruneEvery is how many calls pass between sweeps of idle keys.
const pruneEvery = 1024

type rateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	calls    int
}

func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-time.Minute)

	rl.calls++
	if rl.calls%pruneEvery == 0 {
		rl.prune(cutoff)
	}

	valid := filterByTime(rl.requests[key], cutoff)
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

func (rl *rateLimiter) prune(cutoff time.Time) {
	for key, times := range rl.requests {
		valid := filterByTime(times, cutoff)
		if len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}
