package collector

import (
	"fmt"
	"sync"
	"time"
)

// cacheEntry wraps a cached value with expiry and insertion order tracking.
type cacheEntry struct {
	value     interface{}
	expiry    time.Time
	insertIdx int64
}

// Cache is a time-boxed memoization of fetch results, keyed by
// (ticker, params), so every page render does not refetch upstream.
// Thread-safe with sync.RWMutex.
type Cache struct {
	mu         sync.RWMutex
	items      map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// NewCache creates a Cache with the given TTL and max entry count.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		items:      make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// CacheKey builds a cache key from the data kind, ticker, and params.
func CacheKey(kind, ticker string, params int) string {
	return fmt.Sprintf("%s:%s:%d", kind, ticker, params)
}

// Get returns a cached value if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && c.now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores a value. Evicts the oldest entry if at capacity.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := cacheEntry{
		value:     value,
		expiry:    c.now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}
	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}
	c.items[key] = e
}

// evictOldest removes the entry with the lowest insertIdx. Must be
// called with mu held.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1
	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
