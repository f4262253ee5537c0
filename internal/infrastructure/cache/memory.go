// Package cache provides an in-process, bounded calculation cache.
package cache

import (
	"container/list"
	"sync"

	"github.com/hapkiduki/sgp-engine/internal/application/port"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1024

type entry struct {
	key   string
	value string
}

var _ port.CalculationCache = (*Memory)(nil)

// Memory is a string-keyed LRU cache safe for concurrent use.
// When full, Set evicts the least recently used entry.
type Memory struct {
	mu        sync.Mutex
	capacity  int
	items     map[string]*list.Element
	order     *list.List // front = most recently used
	hits      uint64
	misses    uint64
	evictions uint64
}

// NewMemory creates a cache holding at most capacity entries.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the value stored under key and marks it as recently used.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		m.misses++
		return "", false
	}

	m.hits++
	m.order.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

// Set stores value under key, replacing any previous value.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		elem.Value.(*entry).value = value
		m.order.MoveToFront(elem)
		return
	}

	m.items[key] = m.order.PushFront(&entry{key: key, value: value})

	if m.order.Len() > m.capacity {
		if oldest := m.order.Back(); oldest != nil {
			m.remove(oldest)
			m.evictions++
		}
	}
}

// Delete removes key and reports whether it was present.
func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false
	}
	m.remove(elem)
	return true
}

// Clear drops every entry. Counters are kept.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element, m.capacity)
	m.order.Init()
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Stats returns a snapshot of the cache counters.
func (m *Memory) Stats() port.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return port.CacheStats{
		Entries:   m.order.Len(),
		Capacity:  m.capacity,
		Hits:      m.hits,
		Misses:    m.misses,
		Evictions: m.evictions,
	}
}

// must be called with mu held
func (m *Memory) remove(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.items, elem.Value.(*entry).key)
}
