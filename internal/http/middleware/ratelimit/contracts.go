package ratelimit

import "time"

// Limiter admits or rejects one request for a caller key
// ("courier:N", "seller:N" or "ip:ADDR").
type Limiter interface {
	Allow(key string) bool
}

// Clock returns the current time for bucket refills.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits everything; used when RATE_LIMIT_ENABLED=false.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }
