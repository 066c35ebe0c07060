package notifier

import (
	"context"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// Notifier delivers a notification for one tournament.
type Notifier interface {
	// Name identifies the channel in logs and metrics.
	Name() string
	// Notify sends the notification for t.
	Notify(ctx context.Context, t *tournament.Tournament) error
}

// DigestNotifier delivers one notification covering several tournaments.
type DigestNotifier interface {
	Name() string
	NotifyDigest(ctx context.Context, tournaments []*tournament.Tournament) error
}

// Message is the channel-neutral rendering of a notification.
type Message struct {
	Title    string
	Subtitle string
	Body     string
}
