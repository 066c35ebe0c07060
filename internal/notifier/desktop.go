package notifier

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// CommandRunner runs an external program.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// DesktopNotifier shows a native notification through osascript on macOS
// or notify-send on Linux.
type DesktopNotifier struct {
	goos string
	run  CommandRunner
}

// NewDesktopNotifier creates a desktop notifier for the current platform.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{goos: runtime.GOOS, run: runCommand}
}

// DesktopSupported reports whether the current platform has a notifier.
func DesktopSupported() bool {
	return runtime.GOOS == "darwin" || runtime.GOOS == "linux"
}

// Name returns "desktop".
func (n *DesktopNotifier) Name() string {
	return "desktop"
}

// Notify shows the notification for t.
func (n *DesktopNotifier) Notify(ctx context.Context, t *tournament.Tournament) error {
	return n.Show(ctx, DesktopMessage(t))
}

// Show displays msg.
func (n *DesktopNotifier) Show(ctx context.Context, msg Message) error {
	switch n.goos {
	case "darwin":
		return n.run(ctx, "osascript", "-e", appleScript(msg))
	case "linux":
		body := msg.Body
		if msg.Subtitle != "" {
			body = msg.Subtitle + "\n" + body
		}
		return n.run(ctx, "notify-send", "--app-name=padel-events", msg.Title, body)
	default:
		return fmt.Errorf("desktop notifications unsupported on %s", n.goos)
	}
}

func appleScript(msg Message) string {
	script := fmt.Sprintf("display notification %s with title %s", appleQuote(msg.Body), appleQuote(msg.Title))
	if msg.Subtitle != "" {
		script += " subtitle " + appleQuote(msg.Subtitle)
	}
	return script
}

// appleQuote returns s as an AppleScript string literal.
func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
