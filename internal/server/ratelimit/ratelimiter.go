package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request counts in fixed windows per user. Every account
// shares the same limit, configured once at construction.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*window
}

type window struct {
	count     int
	windowEnd time.Time
}

// NewLimiter creates a limiter allowing limit requests per user per window.
func NewLimiter(limit int, windowDuration time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  windowDuration,
		windows: make(map[string]*window),
	}
}

// Allow returns true if the user is within the configured limit.
func (l *Limiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	win := l.windows[userID]
	if win == nil || now.After(win.windowEnd) {
		l.windows[userID] = &window{
			count:     1,
			windowEnd: now.Add(l.window),
		}
		return true
	}

	if win.count < l.limit {
		win.count++
		return true
	}

	return false
}

// StartCleanup periodically evicts stale windows to limit memory usage.
func (l *Limiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			l.mu.Lock()
			now := time.Now()
			for userID, win := range l.windows {
				if now.After(win.windowEnd.Add(5 * time.Minute)) {
					delete(l.windows, userID)
				}
			}
			l.mu.Unlock()
		}
	}()
}
