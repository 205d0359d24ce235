package ports

// MutationCachePort is the key-value store a rule engine uses to reuse
// a cacheable rule's recorded mutation log. Keys and values are opaque
// byte strings; any on-disk layout is the caching layer's concern.
//
// Implementations must be safe for concurrent use. Concurrent Put
// calls for the same key may race; the cacheable-rule contract
// guarantees they carry the same value, and the engine verifies that
// before trusting a hit.
type MutationCachePort interface {
	Get(key []byte) ([]byte, bool, error)
	Put(key []byte, value []byte) error
}
