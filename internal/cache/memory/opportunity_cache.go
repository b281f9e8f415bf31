package memory

import (
	"context"
	"sync"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// OpportunityCache holds the latest scan result in process memory. It is the
// fallback when Redis is not configured; the API server then only sees scans
// performed by its own process.
type OpportunityCache struct {
	mu     sync.RWMutex
	latest []domain.Opportunity
	set    bool
}

// NewOpportunityCache creates an empty OpportunityCache.
func NewOpportunityCache() *OpportunityCache {
	return &OpportunityCache{}
}

// SetLatest replaces the cached scan result.
func (c *OpportunityCache) SetLatest(ctx context.Context, opps []domain.Opportunity) error {
	cp := make([]domain.Opportunity, len(opps))
	copy(cp, opps)

	c.mu.Lock()
	c.latest = cp
	c.set = true
	c.mu.Unlock()
	return nil
}

// GetLatest returns the cached scan result, or ErrNotFound before the first
// scan completes.
func (c *OpportunityCache) GetLatest(ctx context.Context) ([]domain.Opportunity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Opportunity, len(c.latest))
	copy(out, c.latest)
	return out, nil
}

var _ domain.OpportunityCache = (*OpportunityCache)(nil)
