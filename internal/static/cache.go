package static

import "sync"

type cacheKey struct {
	name     string
	encoding string
}

// Cache keeps compressed asset bodies keyed by asset name and content coding.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey][]byte
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey][]byte)}
}

// Get returns the cached body for name in the given coding.
func (c *Cache) Get(name, encoding string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	body, ok := c.entries[cacheKey{name, encoding}]
	return body, ok
}

// Put stores a compressed body.
func (c *Cache) Put(name, encoding string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{name, encoding}] = body
}

// Invalidate drops every coding of name and reports how many entries went away.
func (c *Cache) Invalidate(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.entries {
		if key.name == name {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Len returns the number of cached bodies.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
