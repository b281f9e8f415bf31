// Package matching decides cross-platform market equivalence. The lexical
// scorer is the cheap no-network heuristic; the semantic matcher layers
// embedding similarity and category-aware structural validation on top.
package matching

import (
	"strings"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// stopWords are tokens too generic to carry matching signal.
var stopWords = map[string]bool{
	"the": true, "will": true, "with": true, "this": true, "that": true,
	"what": true, "when": true, "who": true, "win": true, "wins": true,
	"winner": true, "market": true, "game": true, "match": true,
	"2024": true, "2025": true, "2026": true,
}

const (
	// titleThreshold is the minimum title similarity for lexical equivalence.
	titleThreshold = 0.4
	// outcomeThreshold is the minimum similarity any one outcome-name pair of
	// two multi-outcome markets must reach.
	outcomeThreshold = 0.6
	// keyTermWeight discounts the substring-overlap score relative to full
	// word overlap.
	keyTermWeight = 0.8
)

// Similarity scores two titles in [0,1] as the max of their word-overlap
// ratio and a discounted key-term substring-overlap ratio. Key terms are
// tokens longer than 3 characters minus stop-words.
func Similarity(a, b string) float64 {
	wordsA, wordsB := tokenSet(a), tokenSet(b)
	wordScore := overlapRatio(wordsA, wordsB)

	keyA, keyB := keyTerms(wordsA), keyTerms(wordsB)
	keyScore := substringOverlap(keyA, keyB) * keyTermWeight

	if keyScore > wordScore {
		return keyScore
	}
	return wordScore
}

// AreEquivalent is the lexical equivalence decision: different platforms,
// title similarity at or above 0.4, and for two multi-outcome markets at
// least one outcome-name pair scoring above 0.6.
func AreEquivalent(m1, m2 domain.MarketRecord) bool {
	if m1.Platform == m2.Platform {
		return false
	}
	if Similarity(m1.Title, m2.Title) < titleThreshold {
		return false
	}
	if len(m1.Outcomes) > 2 && len(m2.Outcomes) > 2 {
		return anyOutcomePairAbove(m1.Outcomes, m2.Outcomes, outcomeThreshold)
	}
	return true
}

func anyOutcomePairAbove(a, b []domain.Outcome, threshold float64) bool {
	for _, oa := range a {
		for _, ob := range b {
			if Similarity(oa.Name, ob.Name) > threshold {
				return true
			}
		}
	}
	return false
}

func tokenSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if tok != "" {
			out[tok] = true
		}
	}
	return out
}

func keyTerms(words map[string]bool) []string {
	var out []string
	for w := range words {
		if len(w) > 3 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for w := range a {
		if b[w] {
			common++
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(common) / float64(denom)
}

// substringOverlap counts key terms of either side that appear as a
// substring of some term on the other side, normalized by the larger term
// count. Substring matching catches "packers"/"packer" and ticker fragments.
func substringOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := 0
	for _, ta := range a {
		for _, tb := range b {
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				matched++
				break
			}
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(matched) / float64(denom)
}
