package teams

import (
	"sort"
	"strings"
)

// foundTeam tracks where in the text a team was matched so callers get teams
// in order of first appearance (outcome resolution depends on that order).
type foundTeam struct {
	team Team
	pos  int
}

// ExtractTeams finds up to a handful of canonical teams referenced in free
// text, ordered by first appearance. Nicknames are matched before cities
// (cities are sport-ambiguous), longest alias first, word-boundary anchored.
// Uppercase ticker abbreviations ("BAL", "GB") only count when the text also
// carries sports vocabulary, which keeps fragments like "min" in weather or
// statistics copy from producing phantom teams.
func (r *Registry) ExtractTeams(text string) []Team {
	norm := NormalizeName(text)
	if norm == "" {
		return nil
	}
	sporty := hasSportVocabulary(norm)
	leagues := leaguesMentioned(norm)

	var found []foundTeam
	seen := map[string]bool{}
	addTeam := func(t Team, pos int) {
		if seen[t.ID] {
			return
		}
		seen[t.ID] = true
		found = append(found, foundTeam{team: t, pos: pos})
	}
	contextTeams := func() []Team {
		out := make([]Team, 0, len(found))
		for _, f := range found {
			out = append(out, f.team)
		}
		return out
	}

	// Nicknames win over cities.
	for _, alias := range r.aliasOrder {
		pos := indexWord(norm, alias)
		if pos < 0 {
			continue
		}
		if t, ok := pickCandidate(r.byAlias[alias], contextTeams(), leagues); ok {
			addTeam(t, pos)
		}
	}

	// Cities fill in what nicknames did not cover.
	if len(found) < 2 {
		for _, city := range r.cityOrder {
			pos := indexWord(norm, city)
			if pos < 0 {
				continue
			}
			if t, ok := r.disambiguateCityWithLeagues(city, contextTeams(), leagues); ok {
				addTeam(t, pos)
			}
			if len(found) >= 2 {
				break
			}
		}
	}

	// Uppercase abbreviations, gated on sports context.
	if len(found) < 2 && (sporty || len(found) > 0) {
		for _, tok := range upperTokens(text) {
			cands := r.byAbbrev[strings.ToLower(tok.word)]
			if len(cands) == 0 {
				continue
			}
			if t, ok := pickCandidate(cands, contextTeams(), leagues); ok {
				addTeam(t, tok.pos)
			}
			if len(found) >= 2 {
				break
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	out := make([]Team, 0, len(found))
	for _, f := range found {
		out = append(out, f.team)
	}
	return out
}

// ExtractTeamIDs is ExtractTeams reduced to canonical IDs.
func (r *Registry) ExtractTeamIDs(text string) []string {
	ts := r.ExtractTeams(text)
	ids := make([]string, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	return ids
}

// ExtractAbbrevTeams resolves lowercase slug/ticker abbreviations within one
// known sport, e.g. the "bal" and "gb" of "nfl-bal-gb-2026-01-05". The sport
// is trusted context here, so no vocabulary gate applies.
func (r *Registry) ExtractAbbrevTeams(text, sport string) []Team {
	var out []Team
	seen := map[string]bool{}
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if t, ok := r.ByAbbrev(sport, tok); ok && !seen[t.ID] {
			seen[t.ID] = true
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) disambiguateCityWithLeagues(city string, ctx []Team, leagues []string) (Team, bool) {
	if len(ctx) == 0 && len(leagues) > 0 {
		for _, c := range r.byCity[city] {
			for _, lg := range leagues {
				if c.Sport == lg {
					return *c, true
				}
			}
		}
	}
	return r.DisambiguateCity(city, ctx)
}

// pickCandidate resolves a cross-league alias collision ("jets", "kings",
// "panthers") using sport context from already-extracted teams, then an
// explicit league mention, then the fixed sport preference.
func pickCandidate(cands []*Team, ctx []Team, leagues []string) (Team, bool) {
	if len(cands) == 0 {
		return Team{}, false
	}
	if len(cands) == 1 {
		return *cands[0], true
	}
	for _, c := range ctx {
		for _, cand := range cands {
			if cand.Sport == c.Sport {
				return *cand, true
			}
		}
	}
	for _, lg := range leagues {
		for _, cand := range cands {
			if cand.Sport == lg {
				return *cand, true
			}
		}
	}
	sorted := append([]*Team(nil), cands...)
	sortBySportPreference(sorted)
	return *sorted[0], true
}

func hasSportVocabulary(norm string) bool {
	for _, w := range sportVocabulary {
		if indexWord(norm, strings.TrimSpace(w)) >= 0 {
			return true
		}
	}
	return false
}

func leaguesMentioned(norm string) []string {
	var out []string
	for _, lg := range []string{"nfl", "nba", "nhl", "mlb"} {
		if indexWord(norm, lg) >= 0 {
			out = append(out, lg)
		}
	}
	return out
}

// indexWord returns the position of phrase in s anchored at word boundaries,
// or -1. Both arguments must already be normalized.
func indexWord(s, phrase string) int {
	if phrase == "" {
		return -1
	}
	from := 0
	for {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !isWordByte(s[i-1])
		end := i + len(phrase)
		after := end == len(s) || !isWordByte(s[end])
		if before && after {
			return i
		}
		from = i + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

type upperToken struct {
	word string
	pos  int
}

// upperTokens returns tokens of the raw text that are entirely uppercase and
// between 2 and 4 letters, the shape exchange tickers use for teams.
func upperTokens(text string) []upperToken {
	var out []upperToken
	start := -1
	upper := true
	flush := func(end int) {
		if start >= 0 && upper {
			n := end - start
			if n >= 2 && n <= 4 {
				out = append(out, upperToken{word: text[start:end], pos: start})
			}
		}
		start = -1
		upper = true
	}
	for i := 0; i < len(text); i++ {
		b := text[i]
		isAlpha := b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
		if isAlpha {
			if start < 0 {
				start = i
			}
			if b >= 'a' && b <= 'z' {
				upper = false
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return out
}
