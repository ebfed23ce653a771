package cli

import (
	"sort"
	"strings"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTournament SortOrder = "tournament"
	SortByStatus     SortOrder = "status"
	SortByText       SortOrder = "text"
)

// statusRank orders LIVE before FINAL before SCHEDULED so the most
// time-sensitive matches come first.
func statusRank(c match.Classification) int {
	switch c {
	case match.Live:
		return 0
	case match.Final:
		return 1
	case match.Scheduled:
		return 2
	default:
		return 3
	}
}

// sortMatches sorts a slice of confirmed matches based on the specified
// sort order
func sortMatches(matches []match.Confirmed, order SortOrder) {
	switch order {
	case SortByTournament:
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Tournament != matches[j].Tournament {
				return matches[i].Tournament < matches[j].Tournament
			}
			// Within a tournament, most time-sensitive first
			return statusRank(matches[i].Classification) < statusRank(matches[j].Classification)
		})
	case SortByStatus:
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Classification != matches[j].Classification {
				return statusRank(matches[i].Classification) < statusRank(matches[j].Classification)
			}
			return matches[i].Tournament < matches[j].Tournament
		})
	case SortByText:
		sort.SliceStable(matches, func(i, j int) bool {
			return strings.ToLower(matches[i].DisplayText) < strings.ToLower(matches[j].DisplayText)
		})
	}
}
