package cache

import (
	"container/list"
	"iter"
)

// LRU is an ordered map that tracks recency of use.
//
// LRU is not safe for concurrent use; owners guard it with their own lock so
// that promotion happens in the same critical section as the access driving it.
type LRU[K comparable, V any] struct {
	items     map[K]*list.Element
	evictList *list.List

	hits   int64
	misses int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU creates an empty LRU.
func NewLRU[K comparable, V any]() *LRU[K, V] {
	return &LRU[K, V]{
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get returns the value for key and promotes it to most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if ent, ok := c.items[key]; ok {
		c.hits++
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry[K, V]).value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Peek returns the value for key without changing its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	if ent, ok := c.items[key]; ok {
		return ent.Value.(*entry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Set stores the value for key as most recently used.
func (c *LRU[K, V]) Set(key K, value V) {
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value
		return
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key, value})
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	ent, ok := c.items[key]
	if !ok {
		return false
	}

	c.evictList.Remove(ent)
	delete(c.items, key)
	return true
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	return len(c.items)
}

// Oldest iterates entries from least to most recently used.
// The entry being visited may be deleted during iteration.
func (c *LRU[K, V]) Oldest() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := c.evictList.Back(); e != nil; {
			prev := e.Prev()
			kv := e.Value.(*entry[K, V])
			if !yield(kv.key, kv.value) {
				return
			}
			e = prev
		}
	}
}

// Trim evicts least recently used entries accepted by canEvict until at most
// capacity entries remain. Rejected entries are skipped. onEvict, if non-nil,
// is called for every removed entry. It returns the number of evictions.
func (c *LRU[K, V]) Trim(capacity int, canEvict func(K, V) bool, onEvict func(K, V)) int {
	n := 0
	for k, v := range c.Oldest() {
		if c.Len() <= capacity {
			break
		}
		if canEvict != nil && !canEvict(k, v) {
			continue
		}
		c.Delete(k)
		n++
		if onEvict != nil {
			onEvict(k, v)
		}
	}
	return n
}

// Stats returns hit and miss counts recorded by Get.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits, c.misses
}
