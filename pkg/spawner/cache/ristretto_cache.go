package cache

import (
	"github.com/dgraph-io/ristretto/v2"
)

// RistrettoCache is an alternate Cache backed by dgraph-io/ristretto,
// useful when the compile cache needs bounded memory and an eviction
// policy instead of MemoryCache's unbounded map. A drop-in substitute
// for MemoryCache behind the same Cache interface.
type RistrettoCache struct {
	c *ristretto.Cache[string, string]
}

// NewRistrettoCache builds a bounded LFU-ish cache sized for roughly
// maxItems entries of transpiled source.
func NewRistrettoCache(maxItems int64) (*RistrettoCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoCache{c: c}, nil
}

// Get returns the compiled source for fingerprint, if present.
func (r *RistrettoCache) Get(fingerprint string) (string, bool) {
	return r.c.Get(fingerprint)
}

// Put stores compiled under fingerprint with a cost of 1 entry.
func (r *RistrettoCache) Put(fingerprint, compiled string) {
	r.c.Set(fingerprint, compiled, 1)
	r.c.Wait()
}

// Close releases the underlying ristretto cache's background goroutines.
func (r *RistrettoCache) Close() {
	r.c.Close()
}
