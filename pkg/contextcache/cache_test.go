package contextcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	cache := New(10)

	cache.Put("pdf-tools", "pdf instructions")

	content, ok := cache.Get("pdf-tools")
	require.True(t, ok)
	assert.Equal(t, "pdf instructions", content)

	_, ok = cache.Get("absent")
	assert.False(t, ok)
}

func TestPutReplacesContent(t *testing.T) {
	cache := New(10)

	cache.Put("skill", "first")
	cache.Put("skill", "second")

	content, ok := cache.Get("skill")
	require.True(t, ok)
	assert.Equal(t, "second", content)
	assert.Equal(t, 1, cache.Len())
}

func TestSizeBoundEvictsLRU(t *testing.T) {
	cache := New(DefaultMaxEntries)

	for i := 0; i < DefaultMaxEntries+1; i++ {
		cache.Put(fmt.Sprintf("skill-%02d", i), "content")
	}

	assert.Equal(t, DefaultMaxEntries, cache.Len())

	// skill-00 was least recently used and must be gone.
	_, ok := cache.Get("skill-00")
	assert.False(t, ok)
	_, ok = cache.Get("skill-01")
	assert.True(t, ok)
}

func TestGetProtectsEntryFromEviction(t *testing.T) {
	cache := New(3)

	cache.Put("a", "a")
	cache.Put("b", "b")
	cache.Put("c", "c")

	// Reading "a" promotes it ahead of the untouched "b".
	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put("d", "d")

	_, ok = cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	cache := New(10)

	cache.Put("skill", "content")
	cache.Remove("skill")
	cache.Remove("never-existed")

	_, ok := cache.Get("skill")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestSweepRemovesOldEntries(t *testing.T) {
	cache := New(10)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Put("old", "stale content")

	current = current.Add(2 * time.Hour)
	cache.Put("fresh", "fresh content")

	// "old" is most recently used via Get, but Sweep ignores recency.
	_, ok := cache.Get("old")
	require.True(t, ok)

	removed := cache.Sweep(time.Hour)

	assert.Equal(t, 1, removed)
	_, ok = cache.Get("old")
	assert.False(t, ok)
	_, ok = cache.Get("fresh")
	assert.True(t, ok)
}

func TestSnapshot(t *testing.T) {
	cache := New(10)

	cache.Put("a", "content a")
	cache.Put("b", "content b")

	snapshot := cache.Snapshot()
	assert.Equal(t, map[string]string{"a": "content a", "b": "content b"}, snapshot)

	// Mutating the snapshot must not affect the cache.
	snapshot["a"] = "mutated"
	content, _ := cache.Get("a")
	assert.Equal(t, "content a", content)
}
