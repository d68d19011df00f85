package lru_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/alg/lru"
)

func TestPutGet(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](4)

	cache.Put("a", 1)
	cache.Put("b", 2)

	v, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestPutUpdatesExisting(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](2)

	cache.Put("a", 1)
	cache.Put("a", 2)

	v, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, cache.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](2)

	cache.Put("a", 1)
	cache.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put("c", 3)

	_, ok = cache.Get("b")
	assert.False(t, ok, "b must be evicted")

	_, ok = cache.Get("a")
	assert.True(t, ok)

	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](2)
	cache.Put("a", 1)

	assert.True(t, cache.Remove("a"))
	assert.False(t, cache.Remove("a"))
	assert.Zero(t, cache.Len())
}

func TestClearPreservesStats(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](2)
	cache.Put("a", 1)

	_, _ = cache.Get("a")
	_, _ = cache.Get("b")

	cache.Clear()

	assert.Zero(t, cache.Len())

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestStats(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](1)

	cache.Put("a", 1)
	cache.Put("b", 2)

	_, _ = cache.Get("b")
	_, _ = cache.Get("a")

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.MaxEntries)
	assert.InDelta(t, 0.5, stats.HitRate(), 1e-9)
}

func TestHitRateEmpty(t *testing.T) {
	t.Parallel()

	assert.Zero(t, lru.Stats{}.HitRate())
}

func TestNonPositiveCapacityFallsBack(t *testing.T) {
	t.Parallel()

	cache := lru.New[int, int](0)

	for i := range lru.DefaultMaxEntries {
		cache.Put(i, i)
	}

	assert.Equal(t, lru.DefaultMaxEntries, cache.Len())
	assert.Zero(t, cache.Stats().Evictions)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := lru.New[string, int](64)

	var wg sync.WaitGroup

	for worker := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 100 {
				key := strconv.Itoa((worker + i) % 32)
				cache.Put(key, i)
				_, _ = cache.Get(key)
			}
		}()
	}

	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 64)
}
