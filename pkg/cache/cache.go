package cache

import (
	"golang.org/x/sync/singleflight"
)

// Cache is a string-keyed memo table. Implementations must be safe for
// concurrent use.
type Cache[V any] interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key is absent.
	Get(key string) (V, error)

	// Set stores value under key, evicting the least recently used entry
	// when the cache is full.
	Set(key string, value V) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	// Len reports the number of stored entries.
	Len() int

	// Clear removes all entries.
	Clear() error
}

// Loader computes a value on a cache miss.
type Loader[V any] func() (V, error)

// GetOrSet returns the value cached under key, or calls fn to compute it on a
// miss. Concurrent misses for the same key on the same group share one call
// of fn.
//
// If fn returns an error, nothing is cached and the error is returned.
func GetOrSet[V any](c Cache[V], group *singleflight.Group, key string, fn Loader[V]) (V, error) {
	if v, err := c.Get(key); err == nil {
		return v, nil
	}

	v, err, _ := group.Do(key, func() (any, error) {
		if v, err := c.Get(key); err == nil {
			return v, nil
		}
		val, err := fn()
		if err != nil {
			return nil, err
		}
		// A closed cache still hands the computed value back.
		_ = c.Set(key, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(V), nil
}
