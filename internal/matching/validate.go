package matching

import (
	"github.com/monkeydluthy/prophitline/internal/teams"
)

// Structural validation exists because pure cosine similarity conflates
// same-sport different-game titles and same-wording different-jurisdiction
// races. A pair above the similarity threshold must also pass the gate for
// its category before promotion.

// Validator applies category-specific structural checks to a candidate pair
// of titles.
type Validator struct {
	registry *teams.Registry
}

// NewValidator creates a Validator over the given registry.
func NewValidator(registry *teams.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate reports whether two titles of the given category may refer to the
// same real-world event. Categories without a structural gate pass.
func (v *Validator) Validate(category Category, titleA, titleB string) bool {
	switch category {
	case CategorySports:
		return v.validateSports(titleA, titleB)
	case CategoryPolitics:
		return validatePolitics(titleA, titleB)
	default:
		return true
	}
}

// validateSports requires the extracted team sets to agree: when both titles
// name two teams the pairs must be identical; otherwise any named teams must
// at least intersect. Titles with no teams on either side pass (nothing to
// contradict).
func (v *Validator) validateSports(titleA, titleB string) bool {
	a := v.registry.ExtractTeams(titleA)
	b := v.registry.ExtractTeams(titleB)
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	if len(a) == 2 && len(b) == 2 {
		return samePair(a, b)
	}
	return intersects(a, b)
}

func samePair(a, b []teams.Team) bool {
	return (a[0].ID == b[0].ID && a[1].ID == b[1].ID) ||
		(a[0].ID == b[1].ID && a[1].ID == b[0].ID)
}

func intersects(a, b []teams.Team) bool {
	for _, ta := range a {
		for _, tb := range b {
			if ta.ID == tb.ID {
				return true
			}
		}
	}
	return false
}

// --- politics ---

var officeTypes = []string{"president", "senate", "house", "governor", "mayor"}

// officeAliases fold common phrasings onto an office type.
var officeAliases = map[string]string{
	"presidential": "president", "presidency": "president",
	"senator": "senate", "senatorial": "senate",
	"congressional": "house", "congress": "house",
	"gubernatorial": "governor", "mayoral": "mayor",
}

var usStates = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana",
	"maine", "maryland", "massachusetts", "michigan", "minnesota",
	"mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york",
	"north carolina", "north dakota", "ohio", "oklahoma", "oregon",
	"pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington",
	"west virginia", "wisconsin", "wyoming",
}

var raceStages = []string{"primary", "general", "runoff", "caucus"}

var partyNames = map[string]string{
	"democratic": "democrat", "democrat": "democrat", "democrats": "democrat",
	"republican": "republican", "republicans": "republican", "gop": "republican",
}

// validatePolitics requires office type, state, and race stage/party to each
// agree or be absent on both sides. "Who wins the Ohio Senate primary" must
// never match "Who wins the Ohio Senate general", nor Ohio against Texas.
func validatePolitics(titleA, titleB string) bool {
	a, b := politicalFacets(titleA), politicalFacets(titleB)
	return facetAgrees(a.office, b.office) &&
		facetAgrees(a.state, b.state) &&
		facetAgrees(a.stage, b.stage) &&
		facetAgrees(a.party, b.party)
}

type facets struct {
	office, state, stage, party string
}

func politicalFacets(title string) facets {
	s := teams.NormalizeName(title)
	var f facets
	for _, o := range officeTypes {
		if indexWholeWord(s, o) >= 0 {
			f.office = o
			break
		}
	}
	if f.office == "" {
		for alias, o := range officeAliases {
			if indexWholeWord(s, alias) >= 0 {
				f.office = o
				break
			}
		}
	}
	for _, st := range usStates {
		if indexWholeWord(s, st) >= 0 {
			f.state = st
			break
		}
	}
	for _, stage := range raceStages {
		if indexWholeWord(s, stage) >= 0 {
			f.stage = stage
			break
		}
	}
	for name, party := range partyNames {
		if indexWholeWord(s, name) >= 0 {
			f.party = party
			break
		}
	}
	return f
}

// facetAgrees: equal, or absent on both sides. One side naming a facet the
// other omits is a mismatch; jurisdiction silence is not agreement.
func facetAgrees(a, b string) bool {
	return a == b
}
