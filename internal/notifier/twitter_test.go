package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

func TestFormatTweet(t *testing.T) {
	target := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		match    match.Confirmed
		wantLen  int
		contains []string
	}{
		{
			name: "scheduled match",
			match: match.Confirmed{
				DetailURL:      "https://host/u/1",
				DisplayText:    "Alpha vs Beta\n19:30",
				Classification: match.Scheduled,
				ConfirmedDate:  "11/05/2024",
				Tournament:     "Liga Sudamericana",
			},
			wantLen: 280,
			contains: []string{
				"11/05/2024",
				"Liga Sudamericana",
				"Alpha vs Beta",
				"https://host/u/1",
				"#Basketball",
			},
		},
		{
			name: "live match carries live marker",
			match: match.Confirmed{
				DetailURL:      "https://host/u/2",
				DisplayText:    "Gamma vs Delta PERIODO 2",
				Classification: match.Live,
				ConfirmedDate:  "11/05/2024",
				Tournament:     "BCLA",
			},
			wantLen: 280,
			contains: []string{
				"Live now",
				"Gamma vs Delta",
			},
		},
		{
			name: "final match carries final marker",
			match: match.Confirmed{
				DetailURL:      "https://host/u/3",
				DisplayText:    "Epsilon vs Zeta FINAL 82-79",
				Classification: match.Final,
				ConfirmedDate:  "11/05/2024",
				Tournament:     "BCLA",
			},
			wantLen: 280,
			contains: []string{
				"Final",
				"Epsilon vs Zeta",
			},
		},
		{
			name: "very long text gets truncated",
			match: match.Confirmed{
				DetailURL:      "https://host/u/4",
				DisplayText:    strings.Repeat("An Extremely Long Team Name ", 15),
				Classification: match.Scheduled,
				ConfirmedDate:  "11/05/2024",
				Tournament:     "A Tournament With A Remarkably Verbose Official Title",
			},
			wantLen: 280,
			contains: []string{
				"...",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweet := formatTweet(tt.match, target)

			if len(tweet) > tt.wantLen {
				t.Errorf("tweet exceeds %d characters: %d", tt.wantLen, len(tweet))
			}
			for _, want := range tt.contains {
				if !strings.Contains(tweet, want) {
					t.Errorf("tweet missing %q:\n%s", want, tweet)
				}
			}
		})
	}
}

func TestNewTwitterNotifierRequiresCredentials(t *testing.T) {
	for _, key := range []string{
		"TWITTER_API_KEY",
		"TWITTER_API_SECRET",
		"TWITTER_ACCESS_TOKEN",
		"TWITTER_ACCESS_SECRET",
	} {
		t.Setenv(key, "")
	}

	if _, err := NewTwitterNotifier(); err == nil {
		t.Error("expected error when credentials are missing")
	}
}
