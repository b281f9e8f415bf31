// Package memory provides in-process cache implementations used when no
// Redis address is configured. Single-process only; scans in separate
// processes do not share it.
package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// EmbeddingLRU is a bounded, thread-safe LRU cache of embedding vectors
// implementing domain.EmbeddingCache.
type EmbeddingLRU struct {
	mu      sync.Mutex
	cap     int
	order   *list.List // front = most recently used
	entries map[string]*list.Element
}

type lruEntry struct {
	key string
	vec []float64
}

// NewEmbeddingLRU creates a cache holding at most capacity vectors.
func NewEmbeddingLRU(capacity int) *EmbeddingLRU {
	if capacity <= 0 {
		capacity = 4096
	}
	return &EmbeddingLRU{
		cap:     capacity,
		order:   list.New(),
		entries: make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached vector for a key and marks it recently used.
func (c *EmbeddingLRU) Get(_ context.Context, key string) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).vec, true
}

// Set stores a vector, evicting the least recently used entry at capacity.
func (c *EmbeddingLRU) Set(_ context.Context, key string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).vec = vec
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&lruEntry{key: key, vec: vec})
	if c.order.Len() > c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).key)
	}
}

// Len reports the current number of cached vectors.
func (c *EmbeddingLRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Compile-time interface check.
var _ domain.EmbeddingCache = (*EmbeddingLRU)(nil)
