package match

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date pattern tags. A game_start or game_date hit is authoritative: when
// one is present, generic dates elsewhere on the page are ignored.
const (
	tagGameStart     = "game_start"
	tagGameDate      = "game_date"
	tagScheduledTime = "scheduled_with_time"
	tagGenericDate   = "generic_date"
)

type datePattern struct {
	re  *regexp.Regexp
	tag string
}

// Ordered patterns for dates as they appear on live-stats pages. Labeled
// forms ("Salto inicial:", "Game Date:") come before bare dates so their
// tags win the capture for the same substring.
var datePatterns = []datePattern{
	{regexp.MustCompile(`(?i)Salto\s+inicial:\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), tagGameStart},
	{regexp.MustCompile(`(?i)Start\s+time:\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), tagGameStart},
	{regexp.MustCompile(`(?i)Game\s+Date:\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), tagGameDate},
	{regexp.MustCompile(`(?i)Date:\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), tagGenericDate},
	{regexp.MustCompile(`(?i)GMT\s+(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), tagGenericDate},
	{regexp.MustCompile(`(?i)(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})\s*\d{1,2}:\d{2}\s*[ap]m`), tagScheduledTime},
	{regexp.MustCompile(`\b(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})\b`), tagGenericDate},
}

var separatorFold = strings.NewReplacer(".", "/", "-", "/")

// foundDate is one date hit extracted from free text.
type foundDate struct {
	date    time.Time
	tag     string
	literal string
}

// ResolveDate reports whether text contains a date equal to target,
// comparing calendar dates only (time of day is ignored). It returns the
// original literal substring of the first hit that matched.
//
// If any hit carries a game_start or game_date tag, only those hits are
// compared: a page that states its game date never matches through an
// unrelated generic date. The function is pure and never touches the
// browser session.
func ResolveDate(text string, target time.Time) (bool, string) {
	found := findDates(text)
	if len(found) == 0 {
		return false, ""
	}

	gameDates := make([]foundDate, 0, len(found))
	for _, fd := range found {
		if fd.tag == tagGameStart || fd.tag == tagGameDate {
			gameDates = append(gameDates, fd)
		}
	}

	if len(gameDates) > 0 {
		for _, fd := range gameDates {
			if sameCalendarDay(fd.date, target) {
				return true, fd.literal
			}
		}
		return false, ""
	}

	for _, fd := range found {
		if sameCalendarDay(fd.date, target) {
			return true, fd.literal
		}
	}
	return false, ""
}

// findDates applies every pattern in order and collects the valid dates.
// Triples that do not form a real calendar date are dropped silently.
func findDates(text string) []foundDate {
	var found []foundDate
	for _, dp := range datePatterns {
		for _, m := range dp.re.FindAllStringSubmatch(text, -1) {
			literal := strings.TrimSpace(m[1])
			date, ok := parseDayMonthYear(literal)
			if !ok {
				continue
			}
			found = append(found, foundDate{date: date, tag: dp.tag, literal: literal})
		}
	}
	return found
}

// parseDayMonthYear parses a day/month/year triple with "/", "." or "-"
// separators. Two-digit years are expanded into the 2000s.
func parseDayMonthYear(literal string) (time.Time, bool) {
	parts := strings.Split(separatorFold.Replace(literal), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (Feb 31 becomes Mar 3),
	// so a round-trip mismatch means the triple was not a real date.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
