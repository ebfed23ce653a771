package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// TwitterNotifier posts scan results to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per confirmed match
func (n *TwitterNotifier) Notify(matches []match.Confirmed, target time.Time) error {
	for i, m := range matches {
		tweet := formatTweet(m, target)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for match %s: %w", m.DetailURL, err)
		}

		// Rate limiting: wait between tweets
		if i < len(matches)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats a confirmed match as a tweet
func formatTweet(m match.Confirmed, target time.Time) string {
	tweet := "🏀 Match on " + target.Format("02/01/2006") + "!\n\n"
	tweet += fmt.Sprintf("🏆 %s\n", m.Tournament)
	tweet += fmt.Sprintf("🆚 %s\n", headline(m.DisplayText))

	switch m.Classification {
	case match.Live:
		tweet += "🔴 Live now\n"
	case match.Final:
		tweet += "🏁 Final\n"
	}

	if m.DetailURL != "" {
		tweet += fmt.Sprintf("\n🔗 %s\n", m.DetailURL)
	}
	tweet += "\n#Basketball #LiveStats"

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		// Truncate and add ellipsis
		tweet = tweet[:277] + "..."
	}

	return tweet
}

func headline(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			return text[:i]
		}
	}
	return text
}
