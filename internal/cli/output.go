package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	ScannedAt  time.Time         `json:"scanned_at"`
	TargetDate string            `json:"target_date"`
	Matches    []match.Confirmed `json:"matches"`
	MatchCount int               `json:"match_count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	if result.MatchCount == 0 {
		fmt.Fprintf(w, "No matches found on %s.\n", result.TargetDate)
		return nil
	}

	fmt.Fprintf(w, "Found %d match(es) on %s:\n\n", result.MatchCount, result.TargetDate)

	lastTournament := ""
	for _, m := range result.Matches {
		if m.Tournament != lastTournament {
			fmt.Fprintf(w, "%s\n", m.Tournament)
			lastTournament = m.Tournament
		}
		fmt.Fprintf(w, "  [%s] %s\n", m.Classification, headlineOf(m.DisplayText))
		if m.DetailURL != "" {
			fmt.Fprintf(w, "        %s\n", m.DetailURL)
		}
	}
	return nil
}

func headlineOf(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			return text[:i]
		}
	}
	return text
}
