package matching

import (
	"sort"
	"strings"

	"github.com/monkeydluthy/prophitline/internal/teams"
)

// CacheFormatVersion is baked into every embedding cache key. Bump it when
// TitleNormalizer output changes so stale vectors are never reused.
const CacheFormatVersion = "v2"

// leagueExpansions spell out league abbreviations so embeddings see the same
// phrasing regardless of how a platform abbreviates.
var leagueExpansions = map[string]string{
	"nfl":  "national football league",
	"nba":  "national basketball association",
	"nhl":  "national hockey league",
	"mlb":  "major league baseball",
	"epl":  "english premier league",
	"ucl":  "champions league",
	"ncaa": "college",
}

// fillerWords carry no meaning for equivalence and are stripped after alias
// substitution.
var fillerWords = map[string]bool{
	"will": true, "the": true, "a": true, "an": true, "to": true, "be": true,
	"who": true, "what": true, "which": true,
	"winner": true, "market": true, "wins": true, "win": true,
	"yes": true, "no": true, "or": true,
}

// TitleNormalizer rewrites market titles into a canonical phrasing before
// embedding: league abbreviations expanded, every team alias replaced by its
// canonical city form (longest alias first, so "Packers" never shadows
// "Green Bay Packers"), filler stripped. Both "Ravens vs. Packers" and
// "Baltimore at Green Bay Winner?" come out as the same city-based phrasing.
type TitleNormalizer struct {
	// aliasRepl maps each normalized alias to the canonical replacement,
	// iterated longest first.
	aliasRepl  map[string]string
	aliasOrder []string
}

// Registry is the team-extraction surface the classifier needs from
// internal/teams.
type Registry interface {
	ExtractTeams(text string) []teams.Team
}

// NewTitleNormalizer builds a normalizer over the given team table.
func NewTitleNormalizer(all []teams.Team) *TitleNormalizer {
	n := &TitleNormalizer{
		aliasRepl: make(map[string]string),
	}
	for _, t := range all {
		canonical := teams.NormalizeName(t.City)
		for _, alias := range append([]string{t.Nickname, t.City + " " + t.Nickname}, t.Aliases...) {
			key := teams.NormalizeName(alias)
			if key == "" || key == canonical {
				continue
			}
			n.aliasRepl[key] = canonical
		}
	}
	n.aliasOrder = make([]string, 0, len(n.aliasRepl))
	for k := range n.aliasRepl {
		n.aliasOrder = append(n.aliasOrder, k)
	}
	sort.Slice(n.aliasOrder, func(i, j int) bool {
		if len(n.aliasOrder[i]) != len(n.aliasOrder[j]) {
			return len(n.aliasOrder[i]) > len(n.aliasOrder[j])
		}
		return n.aliasOrder[i] < n.aliasOrder[j]
	})
	return n
}

// Normalize returns the canonical phrasing of a title.
func (n *TitleNormalizer) Normalize(title string) string {
	s := teams.NormalizeName(title)

	words := strings.Fields(s)
	for i, w := range words {
		if exp, ok := leagueExpansions[w]; ok {
			words[i] = exp
		}
	}
	s = strings.Join(words, " ")

	for _, alias := range n.aliasOrder {
		s = replaceWord(s, alias, n.aliasRepl[alias])
	}

	var kept []string
	for _, w := range strings.Fields(s) {
		if !fillerWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// CacheKey is the memoization key for a title's embedding.
func (n *TitleNormalizer) CacheKey(normalized string) string {
	return CacheFormatVersion + ":" + normalized
}

// replaceWord substitutes whole-word occurrences of phrase with repl.
func replaceWord(s, phrase, repl string) string {
	var b strings.Builder
	for {
		i := indexWholeWord(s, phrase)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(repl)
		s = s[i+len(phrase):]
	}
}

func indexWholeWord(s, phrase string) int {
	from := 0
	for {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || s[i-1] == ' '
		end := i + len(phrase)
		after := end == len(s) || s[end] == ' '
		if before && after {
			return i
		}
		from = i + 1
	}
}
