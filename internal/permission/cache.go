package permission

import "sync"

// Cache is the process-wide mapping from user id to resolved permission set.
//
// It is the single source of truth for per-request authorization: populated on
// login, refreshed by the current-user read path, evicted on logout. A miss
// means the user has no active session on this process instance, even if
// their token is still cryptographically valid.
//
// Concurrency contract: Put/Get/Evict/Has are safe from arbitrary goroutines.
// Entries are replaced whole (Set is immutable), so readers never observe a
// partially written entry. Racing writers resolve last-writer-wins per key.
//
// Construct one Cache per process and inject it; tests build isolated
// instances.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]Set
}

func NewCache() *Cache {
	return &Cache{entries: make(map[int64]Set)}
}

// Put unconditionally overwrites the entry for userID.
func (c *Cache) Put(userID int64, s Set) {
	c.mu.Lock()
	c.entries[userID] = s
	c.mu.Unlock()
}

// Get returns the cached set and whether an entry exists. An empty explicit
// set is a valid hit.
func (c *Cache) Get(userID int64) (Set, bool) {
	c.mu.RLock()
	s, ok := c.entries[userID]
	c.mu.RUnlock()
	return s, ok
}

// Evict removes the entry for userID. Evicting an absent entry is a no-op.
func (c *Cache) Evict(userID int64) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}

// Has reports whether the cached set for userID grants code. A cache miss
// denies.
func (c *Cache) Has(userID int64, code string) bool {
	s, ok := c.Get(userID)
	if !ok {
		return false
	}
	return s.Has(code)
}

// Len is the number of cached users. Intended for diagnostics.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return n
}
