// Package memcache implements domain.Cache as an in-process map with TTL
// expiry. It backs deployments that run without Redis and gives tests a
// deterministic cache through the injectable clock.
package memcache

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the current time. The default is time.Now; tests inject a
// fake to step through TTL expiry deterministically.
type Clock func() time.Time

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is an in-process TTL key/value cache. Entries are replaced
// wholesale on Set and removed lazily on read-time expiry checks; there is
// no background sweeper.
type Cache struct {
	mu      sync.RWMutex
	now     Clock
	entries map[string]entry
}

// New creates a cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates a cache with an injected clock.
func NewWithClock(now Clock) *Cache {
	return &Cache{
		now:     now,
		entries: make(map[string]entry),
	}
}

// Get retrieves a value by key. An expired entry is evicted and reported as
// a miss (nil, nil).
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return nil, nil
	}

	return e.value, nil
}

// Set stores a value with the given TTL, replacing any previous entry
// wholesale.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()

	return nil
}

// Delete removes a value by key.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}
