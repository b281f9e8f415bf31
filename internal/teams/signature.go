package teams

import (
	"github.com/monkeydluthy/prophitline/internal/domain"
)

// ExtractEventSignature derives the canonical event key for a market. It
// requires exactly two teams in the title; markets that resolve to fewer or
// more are excluded from sport-aware matching (but remain eligible for
// lexical and semantic matching). The date is taken from the title first,
// then from the ID/link (ticker forms), then from the adapter-supplied field.
func (r *Registry) ExtractEventSignature(m domain.MarketRecord) (domain.EventSignature, bool) {
	ts := r.ExtractTeams(m.Title)
	if len(ts) != 2 {
		return domain.EventSignature{}, false
	}
	// Signatures must pair two distinct franchises of the same sport.
	if ts[0].ID == ts[1].ID || ts[0].Sport != ts[1].Sport {
		return domain.EventSignature{}, false
	}

	date := ExtractDate(m.Title)
	if date == "" {
		date = ExtractDate(m.ID)
	}
	if date == "" {
		date = ExtractDate(m.Link)
	}
	if date == "" {
		date = m.EventDate
	}

	return domain.NewEventSignature(ts[0].ID, ts[1].ID, date), true
}

// EventTeams returns the two teams referenced by a market title, in order of
// first appearance, when there are exactly two.
func (r *Registry) EventTeams(title string) (Team, Team, bool) {
	ts := r.ExtractTeams(title)
	if len(ts) != 2 {
		return Team{}, Team{}, false
	}
	return ts[0], ts[1], true
}
