package scan

import (
	"context"

	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/metrics"
)

// instrumentedEmbeddingCache wraps an embedding cache and counts hits and
// misses on the scanner's metrics registry.
type instrumentedEmbeddingCache struct {
	inner domain.EmbeddingCache
	met   *metrics.Metrics
}

// InstrumentEmbeddingCache wraps cache so lookups are reflected in the
// embed_cache_hits/embed_cache_misses counters. A nil metrics registry
// returns the cache unchanged.
func InstrumentEmbeddingCache(cache domain.EmbeddingCache, met *metrics.Metrics) domain.EmbeddingCache {
	if met == nil {
		return cache
	}
	return &instrumentedEmbeddingCache{inner: cache, met: met}
}

func (c *instrumentedEmbeddingCache) Get(ctx context.Context, key string) ([]float64, bool) {
	vec, ok := c.inner.Get(ctx, key)
	if ok {
		c.met.EmbedCacheHits.Inc()
	} else {
		c.met.EmbedCacheMisses.Inc()
	}
	return vec, ok
}

func (c *instrumentedEmbeddingCache) Set(ctx context.Context, key string, vec []float64) {
	c.inner.Set(ctx, key, vec)
}
