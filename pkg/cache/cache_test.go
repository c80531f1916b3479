package cache_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tempo/pkg/cache"
)

func TestMemory_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		_, err := c.Get("missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Set("key", 42))

		val, err := c.Get("key")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("overwrites existing value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Set("key", 1))
		require.NoError(t, c.Set("key", 2))

		val, err := c.Get("key")
		require.NoError(t, err)
		require.Equal(t, 2, val)
		require.Equal(t, 1, c.Len())
	})
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithMaxEntries(2))
	require.NoError(t, c.Set("a", "1"))
	require.NoError(t, c.Set("b", "2"))

	// Touch "a" so "b" becomes the eviction candidate.
	_, err := c.Get("a")
	require.NoError(t, err)

	require.NoError(t, c.Set("c", "3"))
	require.Equal(t, 2, c.Len())

	_, err = c.Get("b")
	require.ErrorIs(t, err, cache.ErrNotFound)

	_, err = c.Get("a")
	require.NoError(t, err)
}

func TestMemory_DeleteAndClear(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int]()
	require.NoError(t, c.Set("a", 1))
	require.NoError(t, c.Set("b", 2))

	require.NoError(t, c.Delete("a"))
	require.NoError(t, c.Delete("missing"))
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear())
	require.Equal(t, 0, c.Len())
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("computes once and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		var group singleflight.Group
		var calls atomic.Int32

		load := func() (string, error) {
			calls.Add(1)
			return "value", nil
		}

		v, err := cache.GetOrSet(c, &group, "k", load)
		require.NoError(t, err)
		require.Equal(t, "value", v)

		v, err = cache.GetOrSet(c, &group, "k", load)
		require.NoError(t, err)
		require.Equal(t, "value", v)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		var group singleflight.Group
		boom := errors.New("boom")

		_, err := cache.GetOrSet(c, &group, "k", func() (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
		require.Equal(t, 0, c.Len())
	})

	t.Run("deduplicates concurrent misses", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		var group singleflight.Group
		var calls atomic.Int32

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(c, &group, "k", func() (int, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond)
					return 7, nil
				})
				require.NoError(t, err)
				require.Equal(t, 7, v)
			}()
		}
		wg.Wait()

		require.LessOrEqual(t, calls.Load(), int32(2))
	})
}
