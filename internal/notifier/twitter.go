package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/VOST-dev/committee-scheduler/internal/meeting"
	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

// TwitterNotifier posts meeting announcements to Twitter
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

// Notify posts one tweet per newly discovered meeting
func (n *TwitterNotifier) Notify(records []meeting.Record) error {
	for i, rec := range records {
		post := formatPost(rec)

		_, _, err := n.client.Statuses.Update(post, nil)
		if err != nil {
			return fmt.Errorf("failed to post announcement for %s: %w", rec.DetailURL, err)
		}

		// Rate limiting: wait between tweets
		if i < len(records)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatPost formats a meeting record as an announcement post
func formatPost(rec meeting.Record) string {
	post := "【開催案内】" + rec.Name + "\n"
	post += fmt.Sprintf("日付: %s\n", rec.Date)

	if rec.Time != "" {
		post += fmt.Sprintf("時間: %s\n", rec.Time)
	}

	post += "\n詳細: " + rec.DetailURL

	// Twitter limit is 280 characters
	if len([]rune(post)) > 280 {
		runes := []rune(post)
		post = string(runes[:277]) + "..."
	}

	return post
}
