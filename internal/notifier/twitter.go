package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// tweetInterval spaces consecutive tweets.
const tweetInterval = 2 * time.Second

// TwitterNotifier posts tournaments to Twitter
type TwitterNotifier struct {
	client  *twitter.Client
	pageURL string
	last    time.Time
}

// NewTwitterNotifier creates a Twitter notifier from OAuth1 credentials.
func NewTwitterNotifier(cfg config.TwitterConfig, pageURL string) (*TwitterNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	oauth := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	httpClient := oauth.Client(oauth1.NoContext, token)

	return &TwitterNotifier{
		client:  twitter.NewClient(httpClient),
		pageURL: pageURL,
	}, nil
}

// Name returns "twitter".
func (n *TwitterNotifier) Name() string {
	return "twitter"
}

// Notify posts a tweet for t, waiting if the previous tweet was too recent.
func (n *TwitterNotifier) Notify(ctx context.Context, t *tournament.Tournament) error {
	if wait := tweetInterval - time.Since(n.last); !n.last.IsZero() && wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	_, _, err := n.client.Statuses.Update(formatTweet(t, n.pageURL), nil)
	n.last = time.Now()
	if err != nil {
		return fmt.Errorf("failed to post tweet for %s: %w", t.Identity(), err)
	}
	return nil
}

// formatTweet formats a tournament as a tweet
func formatTweet(t *tournament.Tournament, pageURL string) string {
	tweet := "🎾 Nouveau tournoi 4PADEL !\n\n"
	tweet += fmt.Sprintf("🏆 %s %s\n", t.Level, t.Name)

	if t.Club != "" {
		tweet += fmt.Sprintf("📍 %s\n", t.Club)
	}

	if t.Date != "" {
		tweet += fmt.Sprintf("📅 %s à %s\n", t.Date, t.Time)
	}

	if pageURL != "" {
		tweet += "\n🔗 " + pageURL + "\n"
	}
	tweet += "\n#4PADEL #Padel"

	// Twitter limit is 280 characters
	if runes := []rune(tweet); len(runes) > 280 {
		tweet = string(runes[:277]) + "..."
	}

	return tweet
}
