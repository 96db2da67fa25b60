// Package cache provides a size-bounded LRU cache.
//
// Every entry has a weight, typically its size in bytes. When the total
// weight exceeds the limit, the least recently used entries are evicted.
//
//	c := cache.New[string, []byte](64<<20, func(b []byte) int64 { return int64(len(b)) })
//	c.Set("a", data)
//	data, ok := c.Get("a")
//
// A nil weigh function makes the limit an entry count.
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
