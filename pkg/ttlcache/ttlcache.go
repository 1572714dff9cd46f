package ttlcache

import (
	"context"
	"sync"
	"time"
)

type CacheItem[V any] struct {
	Value      V
	Expiration time.Time
}

// Cache is a keyed store where every entry carries its own absolute expiry.
// Expired entries are evicted when read; Run can be used to sweep them too.
//
// Every key also has a generation that moves forward on Invalidate and Clear.
// Callers that compute a value outside the lock take a snapshot with
// Generation before the computation and store it with SetIfGeneration, so a
// value computed before an invalidation is never stored after it.
type Cache[V any] struct {
	mu    sync.Mutex
	items map[string]*CacheItem[V]
	gens  map[string]uint64
	base  uint64
	next  uint64
	now   func() time.Time
}

type Option[V any] func(*Cache[V])

// WithClock replaces time.Now, used by tests to move time forward.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) {
		c.now = now
	}
}

func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		items: make(map[string]*CacheItem[V]),
		gens:  make(map[string]uint64),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if it exists and has not expired. An expired
// entry is removed before returning.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[key]
	if !found {
		return zero, false
	}
	if c.now().After(item.Expiration) {
		delete(c.items, key)
		return zero, false
	}

	return item.Value, true
}

// Set stores value under key until now+ttl, replacing any previous entry.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &CacheItem[V]{
		Value:      value,
		Expiration: c.now().Add(ttl),
	}
}

// Generation returns the current generation of key.
func (c *Cache[V]) Generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generation(key)
}

func (c *Cache[V]) generation(key string) uint64 {
	if gen, found := c.gens[key]; found {
		return gen
	}
	return c.base
}

// SetIfGeneration behaves like Set but only while key is still at gen. It
// reports whether the value was stored.
func (c *Cache[V]) SetIfGeneration(key string, value V, ttl time.Duration, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation(key) != gen {
		return false
	}

	c.items[key] = &CacheItem[V]{
		Value:      value,
		Expiration: c.now().Add(ttl),
	}
	return true
}

// Invalidate removes key and advances its generation. Absent keys are fine.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	c.next++
	c.gens[key] = c.next
}

// Clear removes every entry and advances every generation.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*CacheItem[V])
	c.gens = make(map[string]uint64)
	c.next++
	c.base = c.next
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Run removes expired entries every interval until ctx is done.
func (c *Cache[V]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache[V]) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.items {
		if now.After(item.Expiration) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}
