package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory(4)

	_, ok := c.Get("area:10x10")
	assert.False(t, ok)

	c.Set("area:10x10", "100,00")
	v, ok := c.Get("area:10x10")
	require.True(t, ok)
	assert.Equal(t, "100,00", v)

	c.Set("area:10x10", "100,01")
	v, _ = c.Get("area:10x10")
	assert.Equal(t, "100,01", v)
	assert.Equal(t, 1, c.Len())
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemory(2)

	c.Set("a", "1")
	c.Set("b", "2")
	_, _ = c.Get("a") // b is now the oldest
	c.Set("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok)

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 2, stats.Capacity)
	assert.Equal(t, uint64(1), stats.Evictions)
	assert.Equal(t, uint64(3), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestMemory_DeleteAndClear(t *testing.T) {
	c := NewMemory(10)
	c.Set("a", "1")
	c.Set("b", "2")

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)

	c.Set("d", "4")
	assert.Equal(t, 1, c.Len())
}

func TestNewMemory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewMemory(0).Stats().Capacity)
	assert.Equal(t, DefaultCapacity, NewMemory(-5).Stats().Capacity)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory(50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%120)
				c.Set(key, key)
				if v, ok := c.Get(key); ok {
					assert.Equal(t, key, v)
				}
				if i%17 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
