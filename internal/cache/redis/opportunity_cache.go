package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// latestKey holds the most recent scan's opportunity set.
const latestKey = "opps:latest"

// latestTTL lets a stale snapshot expire if scans stop running.
const latestTTL = 30 * time.Minute

// OpportunityCache implements domain.OpportunityCache as a single JSON blob.
// The API server reads it on every GET rather than waiting on a scan.
type OpportunityCache struct {
	rdb *redis.Client
}

// NewOpportunityCache creates an OpportunityCache backed by the given Client.
func NewOpportunityCache(c *Client) *OpportunityCache {
	return &OpportunityCache{rdb: c.Underlying()}
}

// SetLatest replaces the cached snapshot with the given opportunity set.
func (oc *OpportunityCache) SetLatest(ctx context.Context, opps []domain.Opportunity) error {
	raw, err := json.Marshal(opps)
	if err != nil {
		return fmt.Errorf("redis: encode opportunities: %w", err)
	}
	if err := oc.rdb.Set(ctx, latestKey, raw, latestTTL).Err(); err != nil {
		return fmt.Errorf("redis: set latest opportunities: %w", err)
	}
	return nil
}

// GetLatest returns the cached snapshot. It returns domain.ErrNotFound when
// no scan has populated the cache yet (or the snapshot expired).
func (oc *OpportunityCache) GetLatest(ctx context.Context) ([]domain.Opportunity, error) {
	raw, err := oc.rdb.Get(ctx, latestKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get latest opportunities: %w", err)
	}
	var opps []domain.Opportunity
	if err := json.Unmarshal(raw, &opps); err != nil {
		return nil, fmt.Errorf("redis: decode opportunities: %w", err)
	}
	return opps, nil
}

// Compile-time interface check.
var _ domain.OpportunityCache = (*OpportunityCache)(nil)
