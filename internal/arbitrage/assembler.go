package arbitrage

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// AssemblerConfig holds the stake and fee schedule used to score
// opportunities for ranking. Callers can re-derive an arbitrary split from
// the constituent data each opportunity carries.
type AssemblerConfig struct {
	// Stake is the reference total stake ROI is computed against.
	Stake float64
	// Fees maps each platform to its flat per-leg fee fraction.
	Fees map[domain.Platform]float64
}

// Assembler converts match candidates into opportunity records and merges
// them with opportunities from the sport-aware pass into one ranked list.
type Assembler struct {
	cfg AssemblerConfig
}

// NewAssembler creates an Assembler.
func NewAssembler(cfg AssemblerConfig) *Assembler {
	if cfg.Stake <= 0 {
		cfg.Stake = 1000
	}
	return &Assembler{cfg: cfg}
}

// Fee returns the configured flat fee fraction for a platform.
func (a *Assembler) Fee(p domain.Platform) float64 {
	return a.cfg.Fees[p]
}

// FromCandidate builds an opportunity from a same-direction match candidate:
// the cheaper leg becomes the buy side, the dearer the sell side.
func (a *Assembler) FromCandidate(c domain.MatchCandidate, now time.Time) (domain.Opportunity, bool) {
	legA := domain.Leg{Market: c.A, OutcomeIndex: c.OutcomeA, Price: c.A.Outcomes[c.OutcomeA].Price, Platform: c.A.Platform}
	legB := domain.Leg{Market: c.B, OutcomeIndex: c.OutcomeB, Price: c.B.Outcomes[c.OutcomeB].Price, Platform: c.B.Platform}

	buy, sell := legA, legB
	if buy.Price > sell.Price {
		buy, sell = sell, buy
	}

	split := Calculate(buy.Price, sell.Price, a.cfg.Stake, a.Fee(buy.Platform), a.Fee(sell.Platform))

	opp := domain.Opportunity{
		ID:         uuid.NewString(),
		Title:      longerTitle(c.A.Title, c.B.Title),
		Markets:    []domain.MarketRecord{c.A, c.B},
		BestBuy:    buy,
		BestSell:   sell,
		Spread:     (sell.Price - buy.Price) * 100,
		ROI:        split.ROI,
		Similarity: c.Similarity,
		Confidence: domain.ConfidenceForSimilarity(c.Similarity),
		DetectedAt: now,
	}
	fillAggregates(&opp)
	return opp, true
}

// FromCandidates converts a batch of candidates.
func (a *Assembler) FromCandidates(cands []domain.MatchCandidate, now time.Time) []domain.Opportunity {
	out := make([]domain.Opportunity, 0, len(cands))
	for _, c := range cands {
		if opp, ok := a.FromCandidate(c, now); ok {
			out = append(out, opp)
		}
	}
	return out
}

// Finalize merges opportunity lists, sorts by the caller's strategy, and
// applies the caller's minimum-spread filter. The filter is distinct from
// (and typically tighter than) the coarse promotion gates inside the
// matchers.
func (a *Assembler) Finalize(strategy domain.SortStrategy, minSpread float64, lists ...[]domain.Opportunity) []domain.Opportunity {
	var merged []domain.Opportunity
	for _, l := range lists {
		merged = append(merged, l...)
	}

	kept := merged[:0]
	for _, o := range merged {
		if o.Spread >= minSpread {
			kept = append(kept, o)
		}
	}

	sortOpportunities(kept, strategy)
	return kept
}

func sortOpportunities(opps []domain.Opportunity, strategy domain.SortStrategy) {
	switch strategy {
	case domain.SortBySimilarity:
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].Similarity > opps[j].Similarity })
	case domain.SortByVolume:
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].TotalVolume > opps[j].TotalVolume })
	default:
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].Spread > opps[j].Spread })
	}
}

// fillAggregates sums volume and averages liquidity across constituent
// markets, substituting 10% of a market's volume when its adapter reported
// no liquidity.
func fillAggregates(o *domain.Opportunity) {
	var vol, liq float64
	for _, m := range o.Markets {
		vol += m.Volume
		l := m.Liquidity
		if l <= 0 {
			l = m.Volume * 0.10
		}
		liq += l
	}
	o.TotalVolume = vol
	if n := len(o.Markets); n > 0 {
		o.AvgLiquidity = liq / float64(n)
	}
}

func longerTitle(a, b string) string {
	if len(b) > len(a) {
		return b
	}
	return a
}
