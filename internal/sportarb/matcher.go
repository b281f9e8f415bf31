// Package sportarb finds cross-platform arbitrage in sports markets by
// grouping listings into real-world events (team pair + date tolerance) and
// pairing opposing team-win outcomes across platforms. Grouping by event
// signature is deliberately structural: it catches pairs whose titles share
// almost no wording.
package sportarb

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/monkeydluthy/prophitline/internal/arbitrage"
	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/teams"
)

// Config tunes the sport-aware matcher.
type Config struct {
	Sports        []string // processed one at a time
	PerSportLimit int      // max opportunities returned per sport
	MinROI        float64  // percent
	Stake         float64
	Fees          map[domain.Platform]float64
}

// Matcher runs the sport-aware arbitrage pass over a set of platform
// sources.
type Matcher struct {
	sources  []domain.MarketSource
	registry *teams.Registry
	cfg      Config
	logger   *slog.Logger
}

// NewMatcher creates a Matcher.
func NewMatcher(sources []domain.MarketSource, registry *teams.Registry, cfg Config, logger *slog.Logger) *Matcher {
	if cfg.Stake <= 0 {
		cfg.Stake = 1000
	}
	if cfg.PerSportLimit <= 0 {
		cfg.PerSportLimit = 25
	}
	return &Matcher{
		sources:  sources,
		registry: registry,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "sportarb")),
	}
}

// FindSportsArbitrage processes each configured sport in turn and returns
// the deduplicated opportunities across all of them. Source failures degrade
// that source to zero records for the sport; only a fully empty fetch set
// skips a sport.
func (m *Matcher) FindSportsArbitrage(ctx context.Context) []domain.Opportunity {
	var all []domain.Opportunity
	for _, sport := range m.cfg.Sports {
		opps := m.scanSport(ctx, sport)
		if len(opps) > m.cfg.PerSportLimit {
			sort.SliceStable(opps, func(i, j int) bool { return opps[i].Spread > opps[j].Spread })
			opps = opps[:m.cfg.PerSportLimit]
		}
		all = append(all, opps...)
	}
	return DedupeByEvent(m.registry, all)
}

func (m *Matcher) scanSport(ctx context.Context, sport string) []domain.Opportunity {
	markets := m.fetchSport(ctx, sport)
	if len(markets) == 0 {
		return nil
	}
	markets = filterTeamWinMarkets(validOnly(markets))

	groups := groupByEvent(m.registry, markets)

	var opps []domain.Opportunity
	for _, g := range groups {
		m.ensureBothPlatforms(ctx, sport, g)
		if len(g.platforms()) < 2 {
			continue
		}
		opps = append(opps, m.matchGroup(g)...)
	}
	m.logger.Info("sport scanned",
		slog.String("sport", sport),
		slog.Int("markets", len(markets)),
		slog.Int("events", len(groups)),
		slog.Int("opportunities", len(opps)),
	)
	return opps
}

// fetchSport pulls sport-filtered listings from every source concurrently.
func (m *Matcher) fetchSport(ctx context.Context, sport string) []domain.MarketRecord {
	results := make([][]domain.MarketRecord, len(m.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m.sources {
		i, src := i, src
		g.Go(func() error {
			recs, err := src.FetchSportMarkets(gctx, sport)
			if err != nil {
				m.logger.Warn("sport fetch failed, continuing with partial data",
					slog.String("sport", sport),
					slog.String("platform", string(src.Platform())),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.MarketRecord
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// ensureBothPlatforms attempts slug-fallback retrieval for any source
// missing from an event group before the group is dropped.
func (m *Matcher) ensureBothPlatforms(ctx context.Context, sport string, g *eventGroup) {
	present := g.platforms()
	teamA, okA := m.registry.Get(g.sig.TeamA)
	teamB, okB := m.registry.Get(g.sig.TeamB)
	if !okA || !okB {
		return
	}
	for _, src := range m.sources {
		if present[src.Platform()] {
			continue
		}
		for _, slug := range CandidateSlugs(sport, teamA, teamB, g.sig.Date) {
			recs, err := src.FetchEventBySlug(ctx, slug)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					m.logger.Debug("slug fallback failed",
						slog.String("slug", slug),
						slog.String("error", err.Error()),
					)
				}
				continue
			}
			if len(recs) == 0 {
				continue
			}
			g.markets = append(g.markets, validOnly(recs)...)
			m.logger.Debug("slug fallback recovered event",
				slog.String("slug", slug),
				slog.String("platform", string(src.Platform())),
			)
			break
		}
	}
}

// matchGroup enumerates cross-platform opposing-outcome pairs within one
// event group and scores each with the stake-split calculator.
func (m *Matcher) matchGroup(g *eventGroup) []domain.Opportunity {
	eventTeams := m.eventTeams(g.sig)

	var opps []domain.Opportunity
	for i := 0; i < len(g.markets); i++ {
		for j := i + 1; j < len(g.markets); j++ {
			a, b := g.markets[i], g.markets[j]
			if a.Platform == b.Platform {
				continue
			}
			opps = append(opps, m.matchMarketPair(a, b, eventTeams)...)
		}
	}
	return opps
}

func (m *Matcher) matchMarketPair(a, b domain.MarketRecord, eventTeams []teams.Team) []domain.Opportunity {
	var opps []domain.Opportunity
	for ia, oa := range a.Outcomes {
		if !isTeamWinOutcome(oa) {
			continue
		}
		ra := m.registry.ResolveOutcomeTeam(oa.Name, a.Title, eventTeams, oa.TeamHint)
		if ra.Status == teams.ResolutionRejected {
			continue
		}
		for ib, ob := range b.Outcomes {
			if !isTeamWinOutcome(ob) {
				continue
			}
			rb := m.registry.ResolveOutcomeTeam(ob.Name, b.Title, eventTeams, ob.TeamHint)
			if rb.Status == teams.ResolutionRejected {
				continue
			}

			switch {
			case ra.Status == teams.ResolutionConfirmed && rb.Status == teams.ResolutionConfirmed:
				if ra.Team.ID == rb.Team.ID {
					continue // same team on both legs hedges nothing
				}
			case ra.Status == teams.ResolutionUnresolved && rb.Status == teams.ResolutionUnresolved:
				continue // no way to orient the pair
			default:
				// One side unresolved: shared group membership by signature
				// is strong evidence, so log and keep going.
				m.logger.Warn("outcome resolution unconfirmed for grouped pair",
					slog.String("outcome_a", oa.Name),
					slog.String("outcome_b", ob.Name),
					slog.String("title_a", a.Title),
					slog.String("title_b", b.Title),
				)
			}

			split := arbitrage.CalculateOpposing(oa.Price, ob.Price, m.cfg.Stake,
				m.cfg.Fees[a.Platform], m.cfg.Fees[b.Platform])
			if !split.IsValid || split.ROI < m.cfg.MinROI {
				continue
			}
			if opp, ok := m.buildOpportunity(a, b, ia, ib, ra, split); ok {
				opps = append(opps, opp)
			}
		}
	}
	return opps
}

// buildOpportunity renders an accepted opposing pair in buy/sell form: the
// buy leg is outcome ia of market a, the sell leg is the outcome of market b
// backing the same team (for binary markets, the complement of ib).
func (m *Matcher) buildOpportunity(a, b domain.MarketRecord, ia, ib int, ra teams.TeamResolution, split arbitrage.Split) (domain.Opportunity, bool) {
	sellIdx := complementIndex(b, ib, ra, m.registry)
	if sellIdx < 0 {
		return domain.Opportunity{}, false
	}

	buy := domain.Leg{Market: a, OutcomeIndex: ia, Price: a.Outcomes[ia].Price, Platform: a.Platform}
	sell := domain.Leg{Market: b, OutcomeIndex: sellIdx, Price: b.Outcomes[sellIdx].Price, Platform: b.Platform}
	if sell.Price < buy.Price {
		// Re-orient around the other team.
		buy = domain.Leg{Market: b, OutcomeIndex: ib, Price: b.Outcomes[ib].Price, Platform: b.Platform}
		sellIdx = otherIndex(a, ia)
		if sellIdx < 0 {
			return domain.Opportunity{}, false
		}
		sell = domain.Leg{Market: a, OutcomeIndex: sellIdx, Price: a.Outcomes[sellIdx].Price, Platform: a.Platform}
		if sell.Price < buy.Price {
			return domain.Opportunity{}, false
		}
	}

	opp := domain.Opportunity{
		ID:         uuid.NewString(),
		Title:      longerTitle(a.Title, b.Title),
		Markets:    []domain.MarketRecord{a, b},
		BestBuy:    buy,
		BestSell:   sell,
		Spread:     (sell.Price - buy.Price) * 100,
		ROI:        split.ROI,
		Confidence: domain.ConfidenceHigh,
		DetectedAt: time.Now().UTC(),
	}
	fillAggregates(&opp)
	return opp, true
}

// DedupeByEvent collapses opportunities that refer to the same team pair
// (parsed back out of each opportunity's title), retaining the max-spread
// one per event. A single event can yield several outcome-pair matches.
func DedupeByEvent(registry *teams.Registry, opps []domain.Opportunity) []domain.Opportunity {
	best := map[string]domain.Opportunity{}
	var order []string
	for _, o := range opps {
		key := teamPairKey(registry, o.Title)
		if key == "" {
			key = o.ID // unparsable titles never collapse
		}
		cur, ok := best[key]
		if !ok {
			best[key] = o
			order = append(order, key)
			continue
		}
		if o.Spread > cur.Spread {
			best[key] = o
		}
	}
	out := make([]domain.Opportunity, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

func teamPairKey(registry *teams.Registry, title string) string {
	ts := registry.ExtractTeams(title)
	if len(ts) != 2 {
		return ""
	}
	return domain.NewEventSignature(ts[0].ID, ts[1].ID, "").Key()
}

func (m *Matcher) eventTeams(sig domain.EventSignature) []teams.Team {
	var out []teams.Team
	if t, ok := m.registry.Get(sig.TeamA); ok {
		out = append(out, t)
	}
	if t, ok := m.registry.Get(sig.TeamB); ok {
		out = append(out, t)
	}
	return out
}

// complementIndex finds the outcome of market b that backs the same team as
// the buy leg: the outcome resolving to ra's team, or for a two-outcome
// market simply the other index.
func complementIndex(b domain.MarketRecord, ib int, ra teams.TeamResolution, registry *teams.Registry) int {
	if ra.Status == teams.ResolutionConfirmed {
		for i, o := range b.Outcomes {
			if i == ib {
				continue
			}
			ts := registry.ExtractTeams(o.Name)
			if len(ts) == 1 && ts[0].ID == ra.Team.ID {
				return i
			}
		}
	}
	return otherIndex(b, ib)
}

func otherIndex(m domain.MarketRecord, i int) int {
	if len(m.Outcomes) == 2 {
		return 1 - i
	}
	return -1
}

func validOnly(markets []domain.MarketRecord) []domain.MarketRecord {
	out := make([]domain.MarketRecord, 0, len(markets))
	for _, m := range markets {
		if m.Valid() {
			out = append(out, m)
		}
	}
	return out
}

func longerTitle(a, b string) string {
	if len(b) > len(a) {
		return b
	}
	return a
}

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
