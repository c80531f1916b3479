package cache

import "errors"

// ErrNotFound is returned when a key does not exist in the cache.
var ErrNotFound = errors.New("cache: entry not found")
