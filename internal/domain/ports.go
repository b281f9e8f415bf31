package domain

import (
	"context"
	"time"
)

// MarketSource is a platform adapter that fetches and normalizes raw listings
// into MarketRecords. Implementations live under internal/platform.
type MarketSource interface {
	// Platform identifies which exchange this source fetches from.
	Platform() Platform
	// FetchMarkets returns the platform's active listings.
	FetchMarkets(ctx context.Context) ([]MarketRecord, error)
	// FetchSportMarkets returns listings filtered to a single sport.
	FetchSportMarkets(ctx context.Context, sport string) ([]MarketRecord, error)
	// FetchEventBySlug retrieves a single event's markets by deterministic
	// slug. Used as a fallback when an event is missing from the bulk fetch.
	// Returns ErrNotFound when the slug resolves to nothing.
	FetchEventBySlug(ctx context.Context, slug string) ([]MarketRecord, error)
}

// Embedder obtains embedding vectors for a batch of texts. Every batch
// returns vectors of the same dimensionality, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingCache memoizes embedding vectors by cache key. The mapping is a
// pure function of the key, so concurrent redundant recomputes are harmless.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Set(ctx context.Context, key string, vec []float64)
}

// OpportunityStore persists detected opportunities for history queries.
type OpportunityStore interface {
	Insert(ctx context.Context, opp Opportunity) error
	ListRecent(ctx context.Context, limit int) ([]Opportunity, error)
}

// OpportunityCache holds the most recent scan result for fast API reads.
type OpportunityCache interface {
	SetLatest(ctx context.Context, opps []Opportunity) error
	GetLatest(ctx context.Context) ([]Opportunity, error)
}

// SignalBus provides pub/sub fan-out of scan results to interested consumers
// (the WebSocket hub, notably).
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// BlobWriter uploads a serialized object to blob storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
}

// LockManager serializes a named operation across processes. Acquire returns
// an unlock function on success and ErrLockHeld when another holder owns the
// lock.
type LockManager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}
