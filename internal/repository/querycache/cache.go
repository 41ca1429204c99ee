// Package querycache caches query sparse vectors in memory.
package querycache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

// Cache is a bounded query → vector cache with FIFO eviction. Concurrent misses
// for the same query are computed once.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]sparse.Vector
	order   []string // insertion order, oldest first
	size    int

	group      singleflight.Group
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a cache holding at most size queries.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly; may be nil.
func New(size int, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries:    make(map[string]sparse.Vector, size),
		size:       size,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// GetOrCompute returns the cached vector for query, calling compute on a miss.
// The returned vector is shared and must not be modified.
func (c *Cache) GetOrCompute(query string, compute func() sparse.Vector) sparse.Vector {
	if vec, ok := c.get(query); ok {
		c.incCache("hit")
		return vec
	}

	// Only the caller whose callback runs compute counts a miss.
	computed := false
	v, _, shared := c.group.Do(query, func() (any, error) {
		if vec, ok := c.get(query); ok {
			return vec, nil
		}
		computed = true
		vec := compute()
		c.put(query, vec)
		return vec, nil
	})
	if computed {
		c.incCache("miss")
	} else {
		c.incCache("hit")
	}
	if shared {
		c.logger.Debug("Query vector computation shared", zap.String("query", query))
	}
	return v.(sparse.Vector)
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) get(query string) (sparse.Vector, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.entries[query]
	return vec, ok
}

func (c *Cache) put(query string, vec sparse.Vector) {
	if c.size <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[query]; ok {
		return
	}
	for len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[query] = vec
	c.order = append(c.order, query)
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
