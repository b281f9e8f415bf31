package domain

import "math"

// Platform identifies the prediction-market exchange a record came from.
type Platform string

const (
	PlatformKalshi     Platform = "kalshi"
	PlatformPolymarket Platform = "polymarket"
)

// Outcome is one resolvable result within a market. Price is an implied
// probability in [0,1]; Percent is the same value rounded to 0..100 for
// display.
type Outcome struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Percent  int     `json:"percent"`
	Color    string  `json:"color,omitempty"`
	TeamHint string  `json:"team_hint,omitempty"`
}

// MarketRecord is the normalized market shape produced by platform adapters.
// Records are immutable once emitted by an adapter; the matching pipeline
// never mutates them.
type MarketRecord struct {
	Platform  Platform  `json:"platform"`
	ID        string    `json:"id"` // platform-prefixed opaque identifier
	Title     string    `json:"title"`
	Outcomes  []Outcome `json:"outcomes"`
	Volume    float64   `json:"volume"`
	Liquidity float64   `json:"liquidity"`
	Link      string    `json:"link,omitempty"`
	EventDate string    `json:"event_date,omitempty"` // ISO YYYY-MM-DD when the adapter knows it
}

// minTitleLen is the shortest title considered meaningful for matching.
const minTitleLen = 4

// Valid reports whether the record is well-formed enough to enter matching:
// a non-trivial title, at least one outcome, and finite prices in [0,1].
// Malformed records are filtered, never propagated as errors.
func (m MarketRecord) Valid() bool {
	if len(m.Title) < minTitleLen || len(m.Outcomes) == 0 {
		return false
	}
	for _, o := range m.Outcomes {
		if o.Name == "" {
			return false
		}
		if math.IsNaN(o.Price) || math.IsInf(o.Price, 0) || o.Price < 0 || o.Price > 1 {
			return false
		}
	}
	return true
}
