package domain

import (
	"math"
	"time"
)

// EventSignature is the canonical key for a real-world event: the sorted pair
// of canonical team IDs, plus an ISO date when one could be resolved. Two
// signatures denote the same event iff their team pairs match and the dates
// are either absent on both sides or within one day of each other.
type EventSignature struct {
	TeamA string `json:"team_a"` // lexicographically <= TeamB
	TeamB string `json:"team_b"`
	Date  string `json:"date,omitempty"` // ISO YYYY-MM-DD
}

// NewEventSignature builds a signature from two canonical team IDs, sorting
// them so the key is order independent.
func NewEventSignature(teamA, teamB, date string) EventSignature {
	if teamB < teamA {
		teamA, teamB = teamB, teamA
	}
	return EventSignature{TeamA: teamA, TeamB: teamB, Date: date}
}

// Key returns a string form suitable for map keys and logging.
func (s EventSignature) Key() string {
	k := s.TeamA + "|" + s.TeamB
	if s.Date != "" {
		k += "|" + s.Date
	}
	return k
}

// SameEvent reports whether two signatures refer to the same real-world
// event under the one-day date tolerance.
func (s EventSignature) SameEvent(o EventSignature) bool {
	if s.TeamA != o.TeamA || s.TeamB != o.TeamB {
		return false
	}
	if s.Date == "" && o.Date == "" {
		return true
	}
	if s.Date == "" || o.Date == "" {
		return false
	}
	return datesWithin(s.Date, o.Date, 24*time.Hour)
}

// datesWithin reports whether two ISO dates are at most tol apart. Unparsable
// dates only match on exact string equality.
func datesWithin(a, b string, tol time.Duration) bool {
	if a == b {
		return true
	}
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return false
	}
	return math.Abs(ta.Sub(tb).Hours()) <= tol.Hours()
}

// MatchCandidate pairs one outcome of a market on one platform against an
// opposing outcome on another platform. Candidates only exist during a
// matching pass; the assembler converts accepted candidates to opportunities.
type MatchCandidate struct {
	A          MarketRecord
	B          MarketRecord
	OutcomeA   int
	OutcomeB   int
	Similarity float64 // 0 when the basis is structural rather than semantic
	Basis      string  // e.g. "semantic", "event-signature"
}
