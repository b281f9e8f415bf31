package domain

import "time"

// Confidence buckets a semantic match by cosine similarity. It is reported
// for display and never used as a filter.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SortStrategy selects how the assembler orders the final opportunity list.
type SortStrategy string

const (
	SortBySimilarity SortStrategy = "similarity"
	SortBySpread     SortStrategy = "spread"
	SortByVolume     SortStrategy = "volume"
)

// Leg is one side of an arbitrage pair: a specific outcome of a specific
// market, with the price captured at detection time.
type Leg struct {
	Market       MarketRecord `json:"market"`
	OutcomeIndex int          `json:"outcome_index"`
	Price        float64      `json:"price"`
	Platform     Platform     `json:"platform"`
}

// Outcome returns the leg's outcome, or a zero Outcome if the index is out of
// range.
func (l Leg) Outcome() Outcome {
	if l.OutcomeIndex < 0 || l.OutcomeIndex >= len(l.Market.Outcomes) {
		return Outcome{}
	}
	return l.Market.Outcomes[l.OutcomeIndex]
}

// Opportunity is a cross-platform opposing-outcome pair priced so that a
// stake split guarantees profit regardless of result. Opportunities are
// recomputed per scan and have no independent lifecycle; the history store
// keeps copies for audit only.
type Opportunity struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Markets      []MarketRecord `json:"markets"`
	BestBuy      Leg            `json:"best_buy"`
	BestSell     Leg            `json:"best_sell"`
	Spread       float64        `json:"spread"` // percentage points
	ROI          float64        `json:"roi"`    // percent, fee-aware
	TotalVolume  float64        `json:"total_volume"`
	AvgLiquidity float64        `json:"avg_liquidity"`
	Similarity   float64        `json:"similarity,omitempty"`
	Confidence   Confidence     `json:"confidence"`
	DetectedAt   time.Time      `json:"detected_at"`
}

// ConfidenceForSimilarity maps a cosine similarity to its reporting tier.
func ConfidenceForSimilarity(sim float64) Confidence {
	switch {
	case sim > 0.75:
		return ConfidenceHigh
	case sim > 0.70:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
