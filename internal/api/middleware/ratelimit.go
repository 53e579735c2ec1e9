package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fusandy452/aistudent-backend/internal/api/metrics"
)

// RateLimiterConfig holds the sliding-window settings.
type RateLimiterConfig struct {
	Window          time.Duration // length of the sliding window
	MaxRequests     int           // requests allowed per window per address
	CleanupInterval time.Duration // how often idle addresses are evicted
}

// DefaultRateLimiterConfig returns the production settings:
// 10 requests per 60 seconds per client address.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Window:          60 * time.Second,
		MaxRequests:     10,
		CleanupInterval: 5 * time.Minute,
	}
}

// RateLimiter is an injected per-address sliding-window counter. State lives
// in process memory only: it resets on restart and is not shared across
// instances, which is acceptable for single-instance best-effort throttling.
type RateLimiter struct {
	config RateLimiterConfig

	mu      sync.Mutex
	history map[string][]time.Time

	stopCh chan struct{}
	now    func() time.Time
}

// NewRateLimiter creates a RateLimiter and starts its background cleanup of
// idle addresses.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		history: make(map[string][]time.Time),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Allow drops window-expired timestamps for the address, rejects when the
// remaining count has reached the cap, and otherwise records the request.
func (rl *RateLimiter) Allow(address string) bool {
	now := rl.now()
	cutoff := now.Add(-rl.config.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	kept := rl.history[address][:0]
	for _, ts := range rl.history[address] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= rl.config.MaxRequests {
		rl.history[address] = kept
		return false
	}

	rl.history[address] = append(kept, now)
	return true
}

// Middleware keys the limiter by the client address and answers 429 with a
// Retry-After hint when the window cap is hit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				metrics.RateLimitedTotal.Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(rl.config.Window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"ok":    false,
					"error": "Too many requests. Please try again later.",
				})
			}
			return next(c)
		}
	}
}

// AddressCount returns the number of tracked addresses. For tests and metrics.
func (rl *RateLimiter) AddressCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.history)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup evicts addresses whose every recorded request has left the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.config.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for address, history := range rl.history {
		idle := true
		for _, ts := range history {
			if ts.After(cutoff) {
				idle = false
				break
			}
		}
		if idle {
			delete(rl.history, address)
		}
	}
}
