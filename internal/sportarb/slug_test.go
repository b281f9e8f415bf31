package sportarb

import (
	"reflect"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/teams"
)

func nflPair(t *testing.T) (teams.Team, teams.Team) {
	t.Helper()
	reg := teams.NewRegistry()
	bal, ok := reg.Get("nfl-bal")
	if !ok {
		t.Fatal("registry missing nfl-bal")
	}
	gb, ok := reg.Get("nfl-gb")
	if !ok {
		t.Fatal("registry missing nfl-gb")
	}
	return bal, gb
}

func TestBuildSlug(t *testing.T) {
	bal, gb := nflPair(t)
	if got := BuildSlug("nfl", bal, gb, "2025-09-25"); got != "nfl-bal-gb-2025-09-25" {
		t.Errorf("BuildSlug = %q, want nfl-bal-gb-2025-09-25", got)
	}
}

func TestCandidateSlugs(t *testing.T) {
	bal, gb := nflPair(t)

	got := CandidateSlugs("nfl", bal, gb, "2025-09-25")
	want := []string{
		"nfl-bal-gb-2025-09-25", "nfl-gb-bal-2025-09-25",
		"nfl-bal-gb-2025-09-24", "nfl-gb-bal-2025-09-24",
		"nfl-bal-gb-2025-09-26", "nfl-gb-bal-2025-09-26",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CandidateSlugs = %v, want %v", got, want)
	}

	if got := CandidateSlugs("nfl", bal, gb, ""); got != nil {
		t.Errorf("undated event produced slugs: %v", got)
	}

	// A date that cannot be shifted still yields both orders of itself.
	got = CandidateSlugs("nfl", bal, gb, "week-4")
	want = []string{"nfl-bal-gb-week-4", "nfl-gb-bal-week-4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CandidateSlugs with opaque date = %v, want %v", got, want)
	}
}
