package resolver

import "sync"

// Cache maps an address (exact, case preserving) to a display name.
// Entries are never replaced or removed for the life of the session
type Cache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewCache returns an empty cache
func NewCache() *Cache { return &Cache{m: make(map[string]string)} }

// Name implements format.NameLookup
func (c *Cache) Name(address string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.m[address]
	return n, ok
}

// Put stores name under address unless an entry exists; reports whether it wrote
func (c *Cache) Put(address, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[address]; ok {
		return false
	}
	c.m[address] = name
	return true
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
