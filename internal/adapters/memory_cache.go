package adapters

import (
	"sync"
)

// MemoryMutationCache is an in-process MutationCachePort. Insert is
// first-writer-wins: concurrent computations for the same key are
// allowed to race, and the cacheable-rule contract guarantees they
// converge to the same value, which the engine verifies.
type MemoryMutationCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryMutationCache() *MemoryMutationCache {
	return &MemoryMutationCache{entries: map[string][]byte{}}
}

func (c *MemoryMutationCache) Get(key []byte) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (c *MemoryMutationCache) Put(key []byte, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[string(key)]; ok {
		return nil
	}
	c.entries[string(key)] = append([]byte(nil), value...)
	return nil
}

// Len reports the number of cached entries, for tests and diagnostics.
func (c *MemoryMutationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
