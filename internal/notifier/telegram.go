package notifier

import (
	"context"

	"github.com/pfrederiksen/padel-events/internal/telegram"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// MessageSender sends a formatted text message.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier sends one HTML message per tournament.
type TelegramNotifier struct {
	sender  MessageSender
	pageURL string
}

// NewTelegramNotifier creates a Telegram notifier sending through sender.
func NewTelegramNotifier(sender MessageSender, pageURL string) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, pageURL: pageURL}
}

// Name returns "telegram".
func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// Notify sends the message for t.
func (n *TelegramNotifier) Notify(ctx context.Context, t *tournament.Tournament) error {
	return n.sender.SendMessage(ctx, telegram.FormatTournament(t, n.pageURL))
}
