package cachutil

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// WithLoader returns a ttlcache option that uses load to compute the value
// of a missing key. Concurrent loads of the same key are suppressed so that
// load only runs once per key at a time.
func WithLoader[K comparable, V any](group *singleflight.Group, ttl time.Duration, load func(key K) V) ttlcache.Option[K, V] {
	loader := ttlcache.LoaderFunc[K, V](
		func(c *ttlcache.Cache[K, V], key K) *ttlcache.Item[K, V] {
			return c.Set(key, load(key), ttl)
		},
	)
	return ttlcache.WithLoader[K, V](
		ttlcache.NewSuppressedLoader[K, V](loader, group),
	)
}

// NewLoadingCache returns a cache that loads missing keys with load
// and keeps them for ttl. A capacity of 0 is unbounded.
//
// Expired items are dropped lazily on access; call Start on the
// returned cache for background eviction.
func NewLoadingCache[K comparable, V any](ttl time.Duration, capacity uint64, load func(key K) V) *ttlcache.Cache[K, V] {
	opts := []ttlcache.Option[K, V]{
		ttlcache.WithTTL[K, V](ttl),
		WithLoader(new(singleflight.Group), ttl, load),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[K, V](capacity))
	}
	return ttlcache.New[K, V](opts...)
}

// Load returns the value of key, loading it if missing.
func Load[K comparable, V any](c *ttlcache.Cache[K, V], key K) (v V, ok bool) {
	item := c.Get(key)
	if item == nil {
		return v, false
	}
	return item.Value(), true
}
