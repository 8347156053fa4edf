// Package cache provides the memoization facade strategy evaluations
// go through for external per-team lookups.
package cache

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// FetchFunc performs the external lookup on a cache miss
type FetchFunc func() (any, error)

// LookupCache memoizes external lookups within a run. Dozens of
// strategies share the same team lookups, so a fixture batch costs one
// external call per distinct key rather than one per strategy.
type LookupCache struct {
	run    *cache.Cache
	logger *logrus.Logger

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// NewLookupCache creates a per-run lookup cache
func NewLookupCache(defaultTTL time.Duration, logger *logrus.Logger) *LookupCache {
	return &LookupCache{
		run:    cache.New(defaultTTL, defaultTTL*2),
		logger: logger,
	}
}

// GetOrFetch returns the cached value for key or delegates to fetch.
// A failed fetch is returned to the caller and never cached, so the
// next call retries instead of pinning the failure.
func (c *LookupCache) GetOrFetch(key string, ttl time.Duration, fetch FetchFunc) (any, error) {
	if value, found := c.run.Get(key); found {
		c.count(true)
		return value, nil
	}

	value, err := fetch()
	if err != nil {
		c.count(false)
		c.logger.WithError(err).WithField("key", key).Debug("Lookup fetch failed")
		return nil, err
	}

	c.run.Set(key, value, ttl)
	c.count(false)
	return value, nil
}

// Stats returns hit and miss counts for the run
func (c *LookupCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Flush clears every memoized value
func (c *LookupCache) Flush() {
	c.run.Flush()
}

func (c *LookupCache) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}
