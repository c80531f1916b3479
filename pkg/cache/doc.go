// Package cache provides a small generic memo cache used to keep compiled
// format patterns and unpacked timezone records around between calls.
//
// # Interface
//
// The [Cache] interface is generic over value type V:
//
//   - Get(key) (V, error) - retrieve a value
//   - Set(key, value) error - store a value
//   - Delete(key) error - remove a key
//   - Len() int - count entries
//   - Clear() error - remove all entries
//
// # In-Memory Cache
//
// [NewMemory] returns a map-backed cache with optional LRU eviction:
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(1024))
//	_ = c.Set("greeting", "hello")
//	val, err := c.Get("greeting") // val = "hello"
//
// # Stampede Prevention
//
// [GetOrSet] computes a missing value once even when many goroutines miss
// the same key at the same time. Each caller owns its singleflight group so
// that keys of unrelated caches never collide:
//
//	var group singleflight.Group
//	zone, err := cache.GetOrSet(c, &group, "america/new_york", func() (*tz.Zone, error) {
//	    return tz.Unpack(packed)
//	})
//
// # Error Handling
//
// [ErrNotFound] is returned by Get on a miss. Use [errors.Is] to check.
package cache
