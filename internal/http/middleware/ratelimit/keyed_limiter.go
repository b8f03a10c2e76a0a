package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config stores KeyedLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle entries are evicted after TTL, 0 keeps them forever
	MaxBuckets int           // 0 = unbounded
}

// KeyedLimiter keeps one rate.Limiter per caller key.
type KeyedLimiter struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	entries   map[string]*entry
	nextSweep time.Time
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter normalises cfg and returns a limiter reading time from clock.
func NewKeyedLimiter(clock Clock, cfg Config) *KeyedLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &KeyedLimiter{
		cfg:     cfg,
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Allow consumes one token from key's bucket.
func (l *KeyedLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	l.sweep(now)
	e, ok := l.entries[key]
	if !ok {
		// таблица полна: новых не пускаем до вытеснения по TTL
		if l.cfg.MaxBuckets > 0 && len(l.entries) >= l.cfg.MaxBuckets {
			l.mu.Unlock()
			return false
		}
		e = &entry{lim: rate.NewLimiter(rate.Limit(l.cfg.Rate), l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	lim := e.lim
	l.mu.Unlock()

	return lim.AllowN(now, 1)
}

// Len reports how many keys are tracked.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// sweep runs at most once per max(TTL/2, 1m). Caller holds l.mu.
func (l *KeyedLimiter) sweep(now time.Time) {
	ttl := l.cfg.TTL
	if ttl <= 0 || now.Before(l.nextSweep) {
		return
	}
	every := max(ttl/2, time.Minute)
	l.nextSweep = now.Add(every)

	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > ttl {
			delete(l.entries, k)
		}
	}
}
