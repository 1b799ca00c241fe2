package scan

import (
	"sync"
	"time"

	"github.com/wonny/vulture/internal/contracts"
)

// SnapshotCache is an in-memory TTL cache for per-instrument snapshots.
// It only ever holds successful fetches, so failures are naturally retried
// on the next scan. Size is bounded by the universe (≤ ~4,000 entries), so
// no eviction beyond TTL is needed.
// ⭐ SSOT: 스냅샷 캐싱은 이 구조체에서만
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration

	now func() time.Time // injectable clock for tests
}

type cacheEntry struct {
	snapshot *contracts.Snapshot
	storedAt time.Time
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a snapshot if present and not expired
func (c *SnapshotCache) Get(code string) (*contracts.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[code]
	if !exists {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}

	return entry.snapshot, true
}

// Put stores a snapshot
func (c *SnapshotCache) Put(code string, snapshot *contracts.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[code] = cacheEntry{
		snapshot: snapshot,
		storedAt: c.now(),
	}
}

// Len returns the number of entries, expired ones included
func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops expired entries. Called opportunistically between scans.
func (c *SnapshotCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	for code, entry := range c.entries {
		if entry.storedAt.Before(cutoff) {
			delete(c.entries, code)
		}
	}
}
