package storage

import (
	"container/list"
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	key     string
	value   V
	stored  time.Time
	element *list.Element
}

// MemoryCache is a size bounded LRU cache whose entries expire after ttl. A zero ttl
// disables expiry. Expired entries are dropped lazily on access or by Prune.
type MemoryCache[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*cacheEntry[V]
	lru     *list.List
	now     func() time.Time

	hits   int
	misses int
}

// NewMemoryCache creates a cache holding at most maxSize entries. A non-positive maxSize
// is treated as 1.
func NewMemoryCache[V any](maxSize int, ttl time.Duration) *MemoryCache[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &MemoryCache[V]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*cacheEntry[V]),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Set adds or replaces the value for key and marks it most recently used.
func (c *MemoryCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.stored = c.now()
		c.lru.MoveToFront(entry.element)
		return
	}

	entry := &cacheEntry[V]{key: key, value: value, stored: c.now()}
	entry.element = c.lru.PushFront(entry)
	c.items[key] = entry

	for len(c.items) > c.maxSize {
		c.remove(c.lru.Back().Value.(*cacheEntry[V]))
	}
}

// Get returns the live value for key.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.expired(entry) {
		c.remove(entry)
		c.misses++
		return zero, false
	}

	c.lru.MoveToFront(entry.element)
	c.hits++
	return entry.value, true
}

// Delete drops key if present.
func (c *MemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[key]; ok {
		c.remove(entry)
	}
}

// Prune removes every expired entry and returns how many were dropped.
func (c *MemoryCache[V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, entry := range c.items {
		if c.expired(entry) {
			c.remove(entry)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included until pruned.
func (c *MemoryCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of the cache counters.
func (c *MemoryCache[V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Size:    len(c.items),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

func (c *MemoryCache[V]) expired(entry *cacheEntry[V]) bool {
	return c.ttl > 0 && c.now().Sub(entry.stored) > c.ttl
}

func (c *MemoryCache[V]) remove(entry *cacheEntry[V]) {
	delete(c.items, entry.key)
	c.lru.Remove(entry.element)
}

// CacheStats describes cache occupancy and effectiveness.
type CacheStats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
	Hits    int           `json:"hits"`
	Misses  int           `json:"misses"`
}
