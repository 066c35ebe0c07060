package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// DryRunNotifier prints what would be sent without sending anything
type DryRunNotifier struct {
	w io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to w
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	return &DryRunNotifier{w: w}
}

// Name returns "dry-run".
func (n *DryRunNotifier) Name() string {
	return "dry-run"
}

// Notify prints the desktop notification that would be shown for t
func (n *DryRunNotifier) Notify(ctx context.Context, t *tournament.Tournament) error {
	msg := DesktopMessage(t)
	_, err := fmt.Fprintf(n.w, "[dry-run] %s: %s\n", msg.Title, msg.Body)
	return err
}
