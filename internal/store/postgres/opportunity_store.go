package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// OpportunityStore implements domain.OpportunityStore using PostgreSQL.
// Query-friendly columns are flattened; the payload column preserves the
// full opportunity so ListRecent round-trips everything, market snapshots
// included.
type OpportunityStore struct {
	pool *pgxpool.Pool
}

// NewOpportunityStore creates an OpportunityStore backed by the given pool.
func NewOpportunityStore(pool *pgxpool.Pool) *OpportunityStore {
	return &OpportunityStore{pool: pool}
}

// Insert stores a detected opportunity.
func (s *OpportunityStore) Insert(ctx context.Context, opp domain.Opportunity) error {
	payload, err := json.Marshal(opp)
	if err != nil {
		return fmt.Errorf("postgres: encode opportunity %s: %w", opp.ID, err)
	}

	const query = `
		INSERT INTO opportunity_history (
			id, title,
			buy_platform, buy_market_id, buy_outcome, buy_price,
			sell_platform, sell_market_id, sell_outcome, sell_price,
			spread_pp, roi_pct, similarity, confidence,
			total_volume, avg_liquidity, payload, detected_at
		) VALUES (
			$1, $2,
			$3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18
		) ON CONFLICT (id) DO NOTHING`

	_, err = s.pool.Exec(ctx, query,
		opp.ID, opp.Title,
		string(opp.BestBuy.Platform), opp.BestBuy.Market.ID, opp.BestBuy.Outcome().Name, opp.BestBuy.Price,
		string(opp.BestSell.Platform), opp.BestSell.Market.ID, opp.BestSell.Outcome().Name, opp.BestSell.Price,
		opp.Spread, opp.ROI, opp.Similarity, string(opp.Confidence),
		opp.TotalVolume, opp.AvgLiquidity, payload, opp.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert opportunity %s: %w", opp.ID, err)
	}
	return nil
}

// ListRecent returns the most recently detected opportunities, newest first.
func (s *OpportunityStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	query := `SELECT payload FROM opportunity_history ORDER BY detected_at DESC`
	args := []any{}

	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list recent opportunities: %w", err)
	}
	defer rows.Close()

	var opps []domain.Opportunity
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity: %w", err)
		}
		var opp domain.Opportunity
		if err := json.Unmarshal(payload, &opp); err != nil {
			return nil, fmt.Errorf("postgres: decode opportunity: %w", err)
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list recent opportunities rows: %w", err)
	}
	return opps, nil
}

// Compile-time interface check.
var _ domain.OpportunityStore = (*OpportunityStore)(nil)
