package cache

import "sync"

// Cache is a generic thread-safe LRU cache bounded by total entry weight.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	weigh   func(V) int64
	limit   int64
	size    int64

	// head is the most recently used entry, tail the least.
	head, tail *entry[K, V]

	hits, misses, evictions uint64
}

// entry is a cached value and its node in the recency list.
type entry[K comparable, V any] struct {
	key        K
	value      V
	weight     int64
	prev, next *entry[K, V]
}

// New creates a cache holding at most limit total weight. A nil weigh
// counts every entry as 1, making limit an entry count.
func New[K comparable, V any](limit int64, weigh func(V) int64) *Cache[K, V] {
	if weigh == nil {
		weigh = func(V) int64 { return 1 }
	}
	return &Cache[K, V]{
		entries: make(map[K]*entry[K, V]),
		weigh:   weigh,
		limit:   limit,
	}
}

// Get retrieves a value and marks it as recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(e)
	return e.value, true
}

// Set stores a value, replacing any previous value for key, and evicts the
// least recently used entries until the total weight fits the limit.
// A value heavier than the whole limit is not stored; Set reports whether
// the value was stored.
func (c *Cache[K, V]) Set(key K, value V) bool {
	w := c.weigh(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.remove(old)
	}
	if w > c.limit {
		return false
	}

	e := &entry[K, V]{key: key, value: value, weight: w}
	c.entries[key] = e
	c.pushFront(e)
	c.size += w

	for c.size > c.limit && c.tail != nil {
		c.remove(c.tail)
		c.evictions++
	}
	return true
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Size:      c.size,
		Limit:     c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Size is the total weight of the entries.
	Size int64
	// Limit is the weight limit.
	Limit int64
	// Hits and Misses count Get calls.
	Hits, Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before the first Get.
	HitRate float64
	// Evictions counts entries dropped to make room.
	Evictions uint64
}

// The list helpers below require c.mu to be held.

func (c *Cache[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *Cache[K, V]) moveToFront(e *entry[K, V]) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache[K, V]) remove(e *entry[K, V]) {
	c.unlink(e)
	delete(c.entries, e.key)
	c.size -= e.weight
}
