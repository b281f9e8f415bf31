// Package teams maps free-text team references to canonical franchise IDs
// and derives event signatures from market titles. It is the foundation the
// sport-aware matcher builds on: everything here is pure string work with no
// network dependency.
package teams

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Registry resolves team aliases to canonical IDs. It is built once at
// startup and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	byID     map[string]*Team
	byAlias  map[string][]*Team // normalized nickname/alias -> candidates
	byCity   map[string][]*Team // normalized city -> candidates, sportPreference order
	byAbbrev map[string][]*Team // lowercase abbrev -> candidates

	// aliasOrder holds every nickname/alias normalized, longest first, so
	// "Trail Blazers" is tried before "Blazers" and nicknames always beat
	// the cities they share words with.
	aliasOrder []string
	cityOrder  []string
}

// NewRegistry builds a Registry from the built-in franchise tables plus any
// extra entries (config-provided leagues or overrides, matched by ID).
func NewRegistry(extra ...Team) *Registry {
	r := &Registry{
		byID:     make(map[string]*Team),
		byAlias:  make(map[string][]*Team),
		byCity:   make(map[string][]*Team),
		byAbbrev: make(map[string][]*Team),
	}

	for i := range builtinTeams {
		r.add(&builtinTeams[i])
	}
	for i := range extra {
		r.add(&extra[i])
	}

	r.aliasOrder = sortedKeysLongestFirst(r.byAlias)
	r.cityOrder = sortedKeysLongestFirst(r.byCity)
	return r
}

func (r *Registry) add(t *Team) {
	if prev, ok := r.byID[t.ID]; ok {
		*prev = *t // override by ID
		return
	}
	r.byID[t.ID] = t

	names := append([]string{t.Nickname}, t.Aliases...)
	for _, n := range names {
		key := NormalizeName(n)
		if key == "" {
			continue
		}
		r.byAlias[key] = append(r.byAlias[key], t)
	}

	city := NormalizeName(t.City)
	if city != "" {
		r.byCity[city] = append(r.byCity[city], t)
		sortBySportPreference(r.byCity[city])
	}

	ab := strings.ToLower(t.Abbrev)
	if ab != "" {
		r.byAbbrev[ab] = append(r.byAbbrev[ab], t)
		sortBySportPreference(r.byAbbrev[ab])
	}
}

// Get returns the team for a canonical ID.
func (r *Registry) Get(id string) (Team, bool) {
	t, ok := r.byID[id]
	if !ok {
		return Team{}, false
	}
	return *t, true
}

// All returns every registered team, sorted by ID.
func (r *Registry) All() []Team {
	out := make([]Team, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BySport returns all registered teams for a sport.
func (r *Registry) BySport(sport string) []Team {
	var out []Team
	for _, t := range r.byID {
		if t.Sport == sport {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByAbbrev resolves a slug abbreviation within a sport.
func (r *Registry) ByAbbrev(sport, abbrev string) (Team, bool) {
	for _, t := range r.byAbbrev[strings.ToLower(abbrev)] {
		if t.Sport == sport {
			return *t, true
		}
	}
	return Team{}, false
}

// DisambiguateCity picks the franchise a bare city name refers to. When the
// surrounding text already produced teams, their sport decides; otherwise the
// city's most common franchise (sportPreference order) is returned.
func (r *Registry) DisambiguateCity(city string, contextTeams []Team) (Team, bool) {
	candidates := r.byCity[NormalizeName(city)]
	if len(candidates) == 0 {
		return Team{}, false
	}
	for _, ctx := range contextTeams {
		for _, c := range candidates {
			if c.Sport == ctx.Sport {
				return *c, true
			}
		}
	}
	return *candidates[0], true
}

// dropDiacritics removes combining marks so "Montréal" matches "Montreal".
var dropDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases a name, strips diacritics and punctuation, and
// collapses runs of whitespace.
func NormalizeName(s string) string {
	folded, _, err := transform.String(dropDiacritics, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '.' || r == '\'':
			// "St. Louis" -> "st louis" handled by the space path below;
			// apostrophes vanish entirely.
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func sortedKeysLongestFirst(m map[string][]*Team) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func sortBySportPreference(ts []*Team) {
	rank := func(sport string) int {
		for i, s := range sportPreference {
			if s == sport {
				return i
			}
		}
		return len(sportPreference)
	}
	sort.SliceStable(ts, func(i, j int) bool { return rank(ts[i].Sport) < rank(ts[j].Sport) })
}
