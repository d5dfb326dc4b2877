// internal/pkg/cache/cache.go
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time. Injected so staleness is testable.
type Clock func() time.Time

// Cache is a read-through snapshot cache with a fixed freshness window. Any
// write to the underlying store must call Invalidate.
type Cache[T any] struct {
	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	ttl       time.Duration
	valid     bool
	now       Clock
}

func New[T any](ttl time.Duration, now Clock) *Cache[T] {
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{ttl: ttl, now: now}
}

// Get returns the cached value and whether it is still fresh.
func (c *Cache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.stale(c.now()) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores a freshly fetched value.
func (c *Cache[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = v
	c.fetchedAt = c.now()
	c.valid = true
}

// Invalidate discards the cached value.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

// Stale reports whether a value fetched at the recorded time would be stale
// as of now. Pure with respect to the given instant.
func (c *Cache[T]) Stale(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.valid || c.stale(now)
}

func (c *Cache[T]) stale(now time.Time) bool {
	return now.Sub(c.fetchedAt) >= c.ttl
}
