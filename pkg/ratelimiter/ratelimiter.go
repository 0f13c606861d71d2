package ratelimiter

import (
	"fmt"
	"sync"
	"time"
)

// Config defines a token bucket per key: Burst tokens at most, one token
// returned every Interval.
type Config struct {
	// Burst is the bucket capacity. Zero disables limiting.
	Burst    int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	Interval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"1m"`
}

// Enabled reports whether c asks for any limiting at all.
func (c Config) Enabled() bool {
	return c.Burst > 0
}

func (c Config) validate() error {
	if c.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidConfig, c.Burst)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, c.Interval)
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the next token becomes available.
	ResetAt time.Time
	// RetryAfter is zero when Allowed.
	RetryAfter time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// Limiter is an in-memory keyed token bucket. It is safe for concurrent use.
type Limiter struct {
	cfg             Config
	now             func() time.Time
	cleanupInterval time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket

	stop      chan struct{}
	closeOnce sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithCleanupInterval sets how often refilled buckets are dropped.
// Zero disables the background sweep; Prune can still be called directly.
func WithCleanupInterval(d time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupInterval = d
	}
}

// New creates a Limiter. Call Close to stop the background sweep.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l := &Limiter{
		cfg:             cfg,
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		buckets:         make(map[string]*bucket),
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.cleanupInterval > 0 {
		go l.sweep()
	}
	return l, nil
}

// Allow takes one token from key's bucket. An empty key is never limited.
func (l *Limiter) Allow(key string) Result {
	if key == "" {
		return Result{Allowed: true, Limit: l.cfg.Burst, Remaining: l.cfg.Burst}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Burst, lastRefill: now}
		l.buckets[key] = b
	}
	l.refill(b, now)

	res := Result{Limit: l.cfg.Burst}
	if b.tokens > 0 {
		b.tokens--
		res.Allowed = true
	}
	res.Remaining = b.tokens
	res.ResetAt = b.lastRefill.Add(l.cfg.Interval)
	if !res.Allowed {
		res.RetryAfter = res.ResetAt.Sub(now)
	}
	return res
}

// refill credits whole elapsed intervals. lastRefill advances by exactly
// those intervals so partial progress toward the next token is kept.
func (l *Limiter) refill(b *bucket, now time.Time) {
	if b.tokens >= l.cfg.Burst {
		b.lastRefill = now
		return
	}
	n := int(now.Sub(b.lastRefill) / l.cfg.Interval)
	if n <= 0 {
		return
	}
	if b.tokens+n >= l.cfg.Burst {
		b.tokens = l.cfg.Burst
		b.lastRefill = now
		return
	}
	b.tokens += n
	b.lastRefill = b.lastRefill.Add(time.Duration(n) * l.cfg.Interval)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// Prune drops buckets that would be full by now and reports how many were
// removed. A dropped bucket is indistinguishable from a fresh one.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		missing := time.Duration(l.cfg.Burst - b.tokens)
		if now.Sub(b.lastRefill) >= missing*l.cfg.Interval {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Close stops the background sweep. Safe to call more than once.
func (l *Limiter) Close() {
	l.closeOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Prune()
		case <-l.stop:
			return
		}
	}
}
