package sportarb

import (
	"fmt"
	"time"

	"github.com/monkeydluthy/prophitline/internal/teams"
)

// BuildSlug produces the deterministic event slug one platform keys its
// events by: {sport}-{abbrevA}-{abbrevB}-{date}.
func BuildSlug(sport string, a, b teams.Team, date string) string {
	return fmt.Sprintf("%s-%s-%s-%s", sport, a.Abbrev, b.Abbrev, date)
}

// CandidateSlugs enumerates the slugs an event might live under: both team
// orders, and the event date plus one day either side (platforms disagree on
// timezone day boundaries). Events without a date produce no candidates.
func CandidateSlugs(sport string, a, b teams.Team, date string) []string {
	if date == "" {
		return nil
	}
	var out []string
	for _, d := range []string{date, shiftDate(date, -1), shiftDate(date, 1)} {
		if d == "" {
			continue
		}
		out = append(out, BuildSlug(sport, a, b, d), BuildSlug(sport, b, a, d))
	}
	return out
}

func shiftDate(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}
