package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/vulture/internal/contracts"
)

func TestSnapshotCacheHitAndExpiry(t *testing.T) {
	now := time.Now()
	cache := NewSnapshotCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	cache.Put("005930", &contracts.Snapshot{Code: "005930", Price: 70000})

	got, ok := cache.Get("005930")
	assert.True(t, ok)
	assert.Equal(t, "005930", got.Code)

	_, ok = cache.Get("000660")
	assert.False(t, ok)

	// Within TTL
	now = now.Add(4 * time.Minute)
	_, ok = cache.Get("005930")
	assert.True(t, ok)

	// Past TTL
	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("005930")
	assert.False(t, ok)
}

func TestSnapshotCachePurge(t *testing.T) {
	now := time.Now()
	cache := NewSnapshotCache(time.Minute)
	cache.now = func() time.Time { return now }

	cache.Put("005930", &contracts.Snapshot{Code: "005930"})
	now = now.Add(30 * time.Second)
	cache.Put("000660", &contracts.Snapshot{Code: "000660"})

	now = now.Add(45 * time.Second)
	cache.Purge()

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get("000660")
	assert.True(t, ok)
}
