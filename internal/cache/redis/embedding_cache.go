package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// defaultEmbeddingTTL bounds staleness; embeddings for a given normalized
// title never change within a cache format version, so the TTL only exists
// to let dead keys expire.
const defaultEmbeddingTTL = 7 * 24 * time.Hour

// EmbeddingCache implements domain.EmbeddingCache on Redis string keys.
// Vectors are stored JSON-encoded at "embed:{key}". Cache errors degrade to
// misses; the semantic matcher recomputes and carries on.
type EmbeddingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewEmbeddingCache creates an EmbeddingCache backed by the given Client.
// A ttl of zero selects the default.
func NewEmbeddingCache(c *Client, ttl time.Duration, logger *slog.Logger) *EmbeddingCache {
	if ttl <= 0 {
		ttl = defaultEmbeddingTTL
	}
	return &EmbeddingCache{
		rdb:    c.Underlying(),
		ttl:    ttl,
		logger: logger.With(slog.String("component", "embedding_cache")),
	}
}

func embedKey(key string) string {
	return "embed:" + key
}

// Get returns the cached vector for a key, or false on miss or error.
func (ec *EmbeddingCache) Get(ctx context.Context, key string) ([]float64, bool) {
	raw, err := ec.rdb.Get(ctx, embedKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			ec.logger.Warn("embedding get failed", slog.String("error", err.Error()))
		}
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		ec.logger.Warn("embedding decode failed, dropping key", slog.String("key", key))
		_ = ec.rdb.Del(ctx, embedKey(key)).Err()
		return nil, false
	}
	return vec, true
}

// Set stores a vector. Failures are logged and swallowed.
func (ec *EmbeddingCache) Set(ctx context.Context, key string, vec []float64) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := ec.rdb.Set(ctx, embedKey(key), raw, ec.ttl).Err(); err != nil {
		ec.logger.Warn("embedding set failed", slog.String("error", err.Error()))
	}
}

// Compile-time interface check.
var _ domain.EmbeddingCache = (*EmbeddingCache)(nil)
