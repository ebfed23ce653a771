package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

var reportDate = time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)

func sampleMatches() []match.Confirmed {
	return []match.Confirmed{
		{
			DetailURL:      "https://host/u/1",
			DisplayText:    "Alpha vs Beta\n19:30",
			Classification: match.Scheduled,
			ConfirmedDate:  "11/05/2024",
			Tournament:     "Liga Sudamericana",
			TournamentURL:  "https://host/tournament/liga",
		},
		{
			DetailURL:      "https://host/u/2",
			DisplayText:    "Gamma vs Delta PERIODO 2",
			Classification: match.Live,
			ConfirmedDate:  "11/05/2024",
			Tournament:     "BCLA",
			TournamentURL:  "https://host/tournament/bcla",
		},
		{
			DetailURL:      "https://host/u/3",
			DisplayText:    "Epsilon vs Zeta FINAL",
			Classification: match.Final,
			ConfirmedDate:  "11/05/2024",
			Tournament:     "BCLA",
			TournamentURL:  "https://host/tournament/bcla",
		},
	}
}

func TestFormatReport(t *testing.T) {
	got := FormatReport(sampleMatches(), reportDate)

	for _, want := range []string{
		"11/05/2024",
		"3 matches",
		"<b>BCLA</b> (2)",
		"<b>Liga Sudamericana</b> (1)",
		"Alpha vs Beta",
		"https://host/u/2",
		"🔴",
		"🏁",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}

	// Grouping is alphabetical by tournament.
	if strings.Index(got, "BCLA") > strings.Index(got, "Liga Sudamericana") {
		t.Error("tournaments should be sorted alphabetically")
	}

	// Multi-line card text is trimmed to its headline.
	if strings.Contains(got, "19:30") {
		t.Error("report should only carry the card headline")
	}
}

func TestFormatReportEmpty(t *testing.T) {
	got := FormatReport(nil, reportDate)
	if !strings.Contains(got, "no matches found") {
		t.Errorf("unexpected empty report: %s", got)
	}
}

func TestFormatReportEscapesHTML(t *testing.T) {
	matches := []match.Confirmed{{
		DisplayText:    "Alpha <script> vs Beta",
		Classification: match.Scheduled,
		Tournament:     "Liga & Friends",
	}}
	got := FormatReport(matches, reportDate)
	if strings.Contains(got, "<script>") {
		t.Error("card text must be HTML-escaped")
	}
	if !strings.Contains(got, "Liga &amp; Friends") {
		t.Error("tournament name must be HTML-escaped")
	}
}

func TestFormatReportSummary(t *testing.T) {
	got := FormatReportSummary(sampleMatches(), reportDate)
	want := "🏀 Scan 11/05/2024: 3 matches in BCLA (2), Liga Sudamericana (1)"
	if got != want {
		t.Errorf("summary mismatch:\n got %q\nwant %q", got, want)
	}

	if got := FormatReportSummary(nil, reportDate); !strings.Contains(got, "no matches") {
		t.Errorf("unexpected empty summary: %q", got)
	}
}

func TestFormatReportSummarySingular(t *testing.T) {
	got := FormatReportSummary(sampleMatches()[:1], reportDate)
	if !strings.Contains(got, "1 match in") {
		t.Errorf("singular form expected, got %q", got)
	}
}
