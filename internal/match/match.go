package match

import "strings"

// Classification describes the state a match card advertises on the
// tournament page.
type Classification string

const (
	Live      Classification = "LIVE"
	Final     Classification = "FINAL"
	Scheduled Classification = "SCHEDULED"
	Unknown   Classification = "UNKNOWN"
)

// Markers used to classify card text, checked in order. The platform
// serves mixed Spanish/English pages, so both languages appear.
var (
	liveMarkers  = []string{"VIVO", "LIVE", "PERIODO", "PERIOD"}
	finalMarkers = []string{"FINAL", "FIN"}
)

// Classify determines a card's classification from its visible text.
// LIVE markers are checked first, then FINAL markers; anything else with
// text is treated as a scheduled game.
func Classify(text string) Classification {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}
	for _, marker := range liveMarkers {
		if strings.Contains(text, marker) {
			return Live
		}
	}
	for _, marker := range finalMarkers {
		if strings.Contains(text, marker) {
			return Final
		}
	}
	return Scheduled
}

// Candidate is a page element believed to represent one game, before its
// date has been confirmed. Candidates are ephemeral: they are produced and
// discarded within a single tournament's scan.
type Candidate struct {
	DisplayText    string
	Classification Classification
	DetailURL      string

	// Position metadata recorded at extraction time, used to bring the
	// element back into the viewport before clicking it.
	Selector     string
	ElementIndex int
	X, Y         float64
	Width        float64
	Height       float64
}

// Confirmed is a candidate whose date has been verified equal to the
// target date, tagged with the tournament it was found under.
type Confirmed struct {
	DetailURL      string         `json:"match_url"`
	DisplayText    string         `json:"match_info"`
	Classification Classification `json:"match_type"`
	ConfirmedDate  string         `json:"match_date"`
	Tournament     string         `json:"tournament"`
	TournamentURL  string         `json:"tournament_url"`
}
