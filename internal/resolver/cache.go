package resolver

import "sync"

type cacheKey struct {
	siteID     int64
	identifier string
}

// IdentifierCache is an in-memory copy of one identifier mapping table.
// It is safe for concurrent use. Storage stays authoritative: an entry is
// only added once the mapping it mirrors has been persisted.
type IdentifierCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]int64
}

func NewIdentifierCache() *IdentifierCache {
	return &IdentifierCache{entries: make(map[cacheKey]int64)}
}

func (c *IdentifierCache) Get(siteID int64, identifier string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.entries[cacheKey{siteID, identifier}]
	return id, ok
}

func (c *IdentifierCache) Put(siteID int64, identifier string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{siteID, identifier}] = id
}

// Replace drops every entry of the site and loads the given mappings.
func (c *IdentifierCache) Replace(siteID int64, mappings map[string]int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if k.siteID == siteID {
			delete(c.entries, k)
		}
	}
	for identifier, id := range mappings {
		c.entries[cacheKey{siteID, identifier}] = id
	}
}
