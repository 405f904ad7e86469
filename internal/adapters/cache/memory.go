package cache

import (
	"context"
	"sync"
	"time"
)

// Default memory cache configuration constants.
const (
	defaultSweepInterval = time.Minute
)

// Option applies a configuration option to the MemoryCache.
type Option func(*MemoryCache)

// WithSweepInterval sets how often the background sweep removes expired
// entries. Expired entries are also dropped lazily on Get, so the sweep only
// bounds memory, not staleness.
func WithSweepInterval(interval time.Duration) Option {
	return func(c *MemoryCache) {
		if interval > 0 {
			c.sweepInterval = interval
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements Cache with a process-local map and per-key TTL.
// It is the default backend for single-instance deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	closed  bool

	sweepInterval time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	stopOnce      sync.Once
}

// NewMemoryCache creates a memory cache and starts its sweep goroutine.
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries:       make(map[string]memoryEntry),
		sweepInterval: defaultSweepInterval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.sweepLoop()
	return c
}

// Get returns the value stored under key, or ErrMiss.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return nil, ErrClosed
	}
	if !ok || c.now().After(e.expiresAt) {
		return nil, ErrMiss
	}
	return e.value, nil
}

// SetWithTTL stores value under key for the given lifetime.
func (c *MemoryCache) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	// Copy so later mutation by the caller cannot corrupt the snapshot.
	buf := make([]byte, len(value))
	copy(buf, value)
	c.entries[key] = memoryEntry{value: buf, expiresAt: c.now().Add(ttl)}
	return nil
}

// Delete removes the key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	delete(c.entries, key)
	return nil
}

// Close stops the sweep goroutine and drops all entries.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = nil
	return nil
}

// Len returns the number of live (possibly expired, unswept) entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryCache) sweep() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
