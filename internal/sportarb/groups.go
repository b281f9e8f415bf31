package sportarb

import (
	"regexp"

	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/teams"
)

// eventGroup collects every market, across platforms, that resolves to the
// same real-world event signature within the one-day tolerance.
type eventGroup struct {
	sig     domain.EventSignature
	markets []domain.MarketRecord
}

func (g *eventGroup) platforms() map[domain.Platform]bool {
	out := map[domain.Platform]bool{}
	for _, m := range g.markets {
		out[m.Platform] = true
	}
	return out
}

// groupByEvent buckets markets into event groups. A market joins the first
// existing group whose signature denotes the same event; otherwise it opens
// a new group. Markets without a resolvable signature are skipped here;
// they stay eligible for the lexical/semantic passes.
//
// Grouping is more lenient than EventSignature.SameEvent: within one sport's
// listings, an undated market for the same team pair is taken to be the same
// game as a dated one.
func groupByEvent(registry *teams.Registry, markets []domain.MarketRecord) []*eventGroup {
	var groups []*eventGroup
	for _, m := range markets {
		sig, ok := registry.ExtractEventSignature(m)
		if !ok {
			continue
		}
		placed := false
		for _, g := range groups {
			if sameGroup(g.sig, sig) {
				g.markets = append(g.markets, m)
				// A dated signature is more specific than an undated one;
				// keep the dated key for slug fallback.
				if g.sig.Date == "" && sig.Date != "" {
					g.sig.Date = sig.Date
				}
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, &eventGroup{sig: sig, markets: []domain.MarketRecord{m}})
		}
	}
	return groups
}

func sameGroup(a, b domain.EventSignature) bool {
	if a.TeamA != b.TeamA || a.TeamB != b.TeamB {
		return false
	}
	if a.Date == "" || b.Date == "" {
		return true
	}
	return a.SameEvent(b)
}

// numericOutcomeRe spots outcome names that encode lines rather than a team
// winning: point spreads, totals, over/under phrasing.
var numericOutcomeRe = regexp.MustCompile(`(?i)(\bover\b|\bunder\b|[-+]\d+(\.\d+)?|\d+\.5|\bo/u\b|\bspread\b|\btotal\b)`)

// isTeamWinOutcome reports whether an outcome's name is a clean team-win
// shape: a plain Yes/No, or a name free of numeric line encoding.
func isTeamWinOutcome(o domain.Outcome) bool {
	return !numericOutcomeRe.MatchString(o.Name)
}

// filterTeamWinMarkets drops markets that carry no team-win-shaped outcome
// at all. Markets keep their full outcome lists (indexes must stay stable);
// line-encoded outcomes are skipped later, during pair enumeration.
func filterTeamWinMarkets(markets []domain.MarketRecord) []domain.MarketRecord {
	out := markets[:0]
	for _, m := range markets {
		clean := false
		for _, o := range m.Outcomes {
			if isTeamWinOutcome(o) {
				clean = true
				break
			}
		}
		if clean {
			out = append(out, m)
		}
	}
	return out
}
