package memory

import (
	"context"
	"testing"
)

func TestEmbeddingLRUEviction(t *testing.T) {
	ctx := context.Background()
	c := NewEmbeddingLRU(2)

	c.Set(ctx, "a", []float64{1})
	c.Set(ctx, "b", []float64{2})

	// Touch "a" so "b" is the eviction victim.
	if _, ok := c.Get(ctx, "a"); !ok {
		t.Fatal("a missing before eviction")
	}
	c.Set(ctx, "c", []float64{3})

	if _, ok := c.Get(ctx, "b"); ok {
		t.Error("b survived eviction, want least recently used dropped")
	}
	if _, ok := c.Get(ctx, "a"); !ok {
		t.Error("recently used a was evicted")
	}
	if _, ok := c.Get(ctx, "c"); !ok {
		t.Error("newest entry c missing")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestEmbeddingLRUUpdate(t *testing.T) {
	ctx := context.Background()
	c := NewEmbeddingLRU(2)

	c.Set(ctx, "a", []float64{1})
	c.Set(ctx, "a", []float64{9})

	vec, ok := c.Get(ctx, "a")
	if !ok || len(vec) != 1 || vec[0] != 9 {
		t.Errorf("Get(a) = %v, %v; want updated vector", vec, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after in-place update", c.Len())
	}
}

func TestEmbeddingLRUMiss(t *testing.T) {
	c := NewEmbeddingLRU(0) // falls back to the default capacity
	if vec, ok := c.Get(context.Background(), "nope"); ok || vec != nil {
		t.Errorf("Get on empty cache = %v, %v", vec, ok)
	}
}
