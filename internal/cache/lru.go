package cache

import "container/list"

// LRU is a fixed-capacity cache with least-recently-used eviction.
// It does no locking of its own; the owner is expected to serialize access.
type LRU[K comparable, V any] struct {
	capacity int
	order    *list.List // front = most recent
	entries  map[K]*list.Element
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU holding at most capacity entries. A capacity below 1
// is treated as 1.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element, capacity),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[K, V]).value, true
}

// Set inserts or replaces the value for key, making it most recently used.
// When the insert pushes the cache past capacity, the least recently used
// entry is evicted — exactly one per overflowing insert.
func (c *LRU[K, V]) Set(key K, value V) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry[K, V]).key)
	}
}

// Has reports whether key is cached without changing its recency.
func (c *LRU[K, V]) Has(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Clear removes every entry. Used as the bulk invalidation primitive: a
// summary write can affect transitively many cached search and graph results,
// so per-key invalidation is not attempted.
func (c *LRU[K, V]) Clear() {
	c.order.Init()
	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.order.Len()
}
