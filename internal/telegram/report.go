package telegram

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// FormatReport formats a scan's confirmed matches as an HTML report
// message, grouped by tournament.
func FormatReport(matches []match.Confirmed, target time.Time) string {
	date := target.Format("02/01/2006")
	if len(matches) == 0 {
		return fmt.Sprintf("🏀 <b>Scan Report</b>\n\n🗓 %s • no matches found", date)
	}

	var msg strings.Builder
	msg.WriteString("🏀 <b>Scan Report</b>\n\n")
	msg.WriteString(fmt.Sprintf("🗓 %s • %d match%s\n\n", date, len(matches), pluralizeMatches(len(matches))))

	byTournament := make(map[string][]match.Confirmed)
	for _, m := range matches {
		byTournament[m.Tournament] = append(byTournament[m.Tournament], m)
	}

	tournaments := make([]string, 0, len(byTournament))
	for name := range byTournament {
		tournaments = append(tournaments, name)
	}
	sort.Strings(tournaments)

	for _, name := range tournaments {
		entries := byTournament[name]
		msg.WriteString(fmt.Sprintf("🏆 <b>%s</b> (%d)\n", html.EscapeString(name), len(entries)))
		for _, m := range entries {
			msg.WriteString(fmt.Sprintf("  • %s %s\n", statusEmoji(m.Classification), html.EscapeString(firstLine(m.DisplayText))))
			if m.DetailURL != "" {
				msg.WriteString(fmt.Sprintf("    %s\n", html.EscapeString(m.DetailURL)))
			}
		}
		msg.WriteString("\n")
	}

	return strings.TrimRight(msg.String(), "\n")
}

// FormatReportSummary creates a one-line summary of a scan
func FormatReportSummary(matches []match.Confirmed, target time.Time) string {
	date := target.Format("02/01/2006")
	if len(matches) == 0 {
		return fmt.Sprintf("🏀 Scan %s: no matches", date)
	}

	byTournament := make(map[string]int)
	for _, m := range matches {
		byTournament[m.Tournament]++
	}

	parts := make([]string, 0, len(byTournament))
	for name, count := range byTournament {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, count))
	}
	sort.Strings(parts)

	return fmt.Sprintf("🏀 Scan %s: %d match%s in %s",
		date,
		len(matches),
		pluralizeMatches(len(matches)),
		strings.Join(parts, ", "))
}

func statusEmoji(c match.Classification) string {
	switch c {
	case match.Live:
		return "🔴"
	case match.Final:
		return "🏁"
	default:
		return "📅"
	}
}

// firstLine trims a card's multi-line text down to its headline.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func pluralizeMatches(count int) string {
	if count == 1 {
		return ""
	}
	return "es"
}
