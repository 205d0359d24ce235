package adapters

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryCacheInsertIfAbsent(t *testing.T) {
	cache := NewMemoryMutationCache()
	key := []byte("key")

	require.NoError(t, cache.Put(key, []byte("first")))
	require.NoError(t, cache.Put(key, []byte("second")))

	value, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first", string(value))
	require.Equal(t, 1, cache.Len())
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryMutationCache()
	_, ok, err := cache.Get([]byte("absent"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheConcurrentWritersConverge(t *testing.T) {
	cache := NewMemoryMutationCache()
	key := []byte("key")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cache.Put(key, []byte("value"))
		}()
	}
	wg.Wait()

	value, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value", string(value))
	require.Equal(t, 1, cache.Len())
}
