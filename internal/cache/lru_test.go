package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys[K comparable, V any](c *LRU[K, V]) []K {
	var out []K
	for k := range c.Oldest() {
		out = append(out, k)
	}
	return out
}

func TestLRU_GetPromotes(t *testing.T) {
	c := NewLRU[int, string]()
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")
	assert.Equal(t, []int{1, 2, 3}, keys(c))

	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, []int{2, 3, 1}, keys(c))

	// Peek leaves order untouched
	v, ok = c.Peek(2)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []int{2, 3, 1}, keys(c))

	_, ok = c.Get(42)
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_SetUpdates(t *testing.T) {
	c := NewLRU[int, string]()
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(1, "z")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []int{2, 1}, keys(c))
	v, _ := c.Peek(1)
	assert.Equal(t, "z", v)
}

func TestLRU_Delete(t *testing.T) {
	c := NewLRU[int, int]()
	c.Set(1, 1)
	assert.True(t, c.Delete(1))
	assert.False(t, c.Delete(1))
	assert.Equal(t, 0, c.Len())

	// Deleting while iterating
	for i := range 5 {
		c.Set(i, i)
	}
	for k := range c.Oldest() {
		if k%2 == 0 {
			c.Delete(k)
		}
	}
	assert.Equal(t, []int{1, 3}, keys(c))
}

func TestLRU_Trim(t *testing.T) {
	c := NewLRU[int, bool]()
	for i := range 6 {
		c.Set(i, i == 0 || i == 2) // 0 and 2 are pinned
	}

	var evicted []int
	n := c.Trim(3, func(_ int, pinned bool) bool { return !pinned }, func(k int, _ bool) {
		evicted = append(evicted, k)
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 3, 4}, evicted)
	assert.Equal(t, []int{0, 2, 5}, keys(c))

	// Everything pinned: nothing to evict
	assert.Equal(t, 0, c.Trim(0, func(int, bool) bool { return false }, nil))
	assert.Equal(t, 3, c.Len())

	assert.Equal(t, 3, c.Trim(0, nil, nil))
	assert.Equal(t, 0, c.Len())
}
