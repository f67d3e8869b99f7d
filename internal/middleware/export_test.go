package middleware

import "time"

// SetClock replaces the limiter's time source.
func (rl *RateLimiter) SetClock(now func() time.Time) { rl.now = now }

// Tracked returns how many client limiters are held.
func (rl *RateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}
