package scraper

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// hostLimiter enforces a minimum delay between requests to the same host so
// concurrent checks against one job board do not hammer it.
type hostLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time
	minDelay time.Duration
}

func newHostLimiter(minDelay time.Duration) *hostLimiter {
	return &hostLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to host.
// Returns an error if the context is cancelled while waiting.
func (l *hostLimiter) Wait(ctx context.Context, host string) error {
	if l.minDelay <= 0 {
		return nil
	}

	l.mu.Lock()
	last, ok := l.lastCall[host]
	now := time.Now()

	if !ok || now.Sub(last) >= l.minDelay {
		l.lastCall[host] = now
		l.mu.Unlock()
		return nil
	}

	remaining := l.minDelay - now.Sub(last)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", host, ctx.Err())
	case <-time.After(remaining):
	}

	l.mu.Lock()
	l.lastCall[host] = time.Now()
	l.mu.Unlock()
	return nil
}

// parseRetryAfter parses a Retry-After header in seconds format.
// Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
