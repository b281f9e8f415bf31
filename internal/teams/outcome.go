package teams

import "strings"

// ResolutionStatus is the three-valued result of resolving an outcome to a
// team. Callers that already know two markets share an event signature treat
// Unresolved as "unconfirmed" rather than a rejection; signatures agreeing is
// itself strong matching evidence.
type ResolutionStatus int

const (
	ResolutionRejected ResolutionStatus = iota
	ResolutionUnresolved
	ResolutionConfirmed
)

// TeamResolution names the team an outcome denotes, with the confidence the
// resolver has in that assignment.
type TeamResolution struct {
	Team   Team
	Status ResolutionStatus
}

// ResolveOutcomeTeam decides which of an event's two teams an outcome name
// refers to. The priority chain:
//
//  1. an explicit hint attached to the outcome by the adapter,
//  2. the outcome name itself naming a team,
//  3. binary Yes/No with exactly one named team in the title: "No" means the
//     named team wins, "Yes" means the other event team wins (needs the
//     two-team context to know who "the other" is),
//  4. two named teams in the title: order of first appearance assigns
//     Yes to the first and No to the second.
//
// eventTeams carries the (up to two) teams of the event the market belongs
// to; pass nil when unknown.
func (r *Registry) ResolveOutcomeTeam(outcomeName, title string, eventTeams []Team, hint string) TeamResolution {
	// 1. Adapter hint.
	if hint != "" {
		if ts := r.ExtractTeams(hint); len(ts) == 1 {
			return TeamResolution{Team: ts[0], Status: ResolutionConfirmed}
		}
	}

	// 2. The outcome names a team directly.
	if ts := r.ExtractTeams(outcomeName); len(ts) == 1 {
		return TeamResolution{Team: ts[0], Status: ResolutionConfirmed}
	}

	yes, no := isYes(outcomeName), isNo(outcomeName)
	if !yes && !no {
		return TeamResolution{Status: ResolutionUnresolved}
	}

	titleTeams := r.ExtractTeams(title)
	switch len(titleTeams) {
	case 1:
		named := titleTeams[0]
		if no {
			return TeamResolution{Team: named, Status: ResolutionConfirmed}
		}
		// "Yes" flips to the other event team, which only the event context
		// knows.
		for _, et := range eventTeams {
			if et.ID != named.ID {
				return TeamResolution{Team: et, Status: ResolutionConfirmed}
			}
		}
		return TeamResolution{Status: ResolutionUnresolved}
	case 2:
		if yes {
			return TeamResolution{Team: titleTeams[0], Status: ResolutionConfirmed}
		}
		return TeamResolution{Team: titleTeams[1], Status: ResolutionConfirmed}
	default:
		return TeamResolution{Status: ResolutionUnresolved}
	}
}

func isYes(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), "yes")
}

func isNo(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), "no")
}
