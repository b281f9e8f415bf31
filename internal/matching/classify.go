package matching

import (
	"strings"
)

// Category buckets markets so cosine comparison only happens within a
// category and the right structural gate applies.
type Category string

const (
	CategorySports   Category = "sports"
	CategoryPolitics Category = "politics"
	CategoryCrypto   Category = "crypto"
	CategoryOther    Category = "other"
)

var (
	sportsKeywords = []string{
		"national football league", "national basketball association",
		"national hockey league", "major league baseball",
		"nfl", "nba", "nhl", "mlb", "ncaa",
		"super bowl", "world series", "stanley cup", "playoff",
		"football", "basketball", "hockey", "baseball", "soccer",
	}
	politicsKeywords = []string{
		"election", "president", "presidential", "senate", "senator",
		"governor", "congress", "house", "mayor", "primary", "nominee",
		"nomination", "ballot", "electoral", "democrat", "republican",
	}
	cryptoKeywords = []string{
		"bitcoin", "btc", "ethereum", "eth", "solana", "crypto",
		"stablecoin", "token",
	}
)

// Classifier assigns a market to a category from its normalized title. The
// team registry gives it a structural signal beyond keywords: two extracted
// teams is sports even when no league is named.
type Classifier struct {
	registry Registry
}

// NewClassifier creates a Classifier over the given registry.
func NewClassifier(registry Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify buckets a normalized title.
func (c *Classifier) Classify(normalizedTitle string) Category {
	if containsAny(normalizedTitle, sportsKeywords) {
		return CategorySports
	}
	if containsAny(normalizedTitle, politicsKeywords) {
		return CategoryPolitics
	}
	if containsAny(normalizedTitle, cryptoKeywords) {
		return CategoryCrypto
	}
	if len(c.registry.ExtractTeams(normalizedTitle)) == 2 {
		return CategorySports
	}
	return CategoryOther
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(s, w) {
				return true
			}
			continue
		}
		if indexWholeWord(s, w) >= 0 {
			return true
		}
	}
	return false
}
