package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordedCommand struct {
	name string
	args []string
}

func fakeRunner(calls *[]recordedCommand, err error) CommandRunner {
	return func(ctx context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCommand{name: name, args: args})
		return err
	}
}

func TestDesktopNotifier_Notify(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		wantCmd  string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:    "macOS uses osascript",
			goos:    "darwin",
			wantCmd: "osascript",
			wantArgs: []string{
				"-e",
				`display notification "P100 Open du jeudi - Padel Club Lyon le 25/10/2026 à 19:30" with title "Nouveau tournoi 4PADEL"`,
			},
		},
		{
			name:    "linux uses notify-send",
			goos:    "linux",
			wantCmd: "notify-send",
			wantArgs: []string{
				"--app-name=padel-events",
				"Nouveau tournoi 4PADEL",
				"P100 Open du jeudi - Padel Club Lyon le 25/10/2026 à 19:30",
			},
		},
		{
			name:    "unsupported platform",
			goos:    "plan9",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []recordedCommand
			n := &DesktopNotifier{goos: tt.goos, run: fakeRunner(&calls, nil)}

			err := n.Notify(context.Background(), sampleTournament())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Notify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if len(calls) != 0 {
					t.Errorf("expected no command, got %v", calls)
				}
				return
			}

			if len(calls) != 1 {
				t.Fatalf("expected 1 command, got %d", len(calls))
			}
			if calls[0].name != tt.wantCmd {
				t.Errorf("command = %q, want %q", calls[0].name, tt.wantCmd)
			}
			if strings.Join(calls[0].args, "|") != strings.Join(tt.wantArgs, "|") {
				t.Errorf("args = %q, want %q", calls[0].args, tt.wantArgs)
			}
		})
	}
}

func TestDesktopNotifier_Subtitle(t *testing.T) {
	var calls []recordedCommand
	n := &DesktopNotifier{goos: "darwin", run: fakeRunner(&calls, nil)}

	err := n.Show(context.Background(), Message{Title: "T", Subtitle: "S", Body: "B"})
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	want := `display notification "B" with title "T" subtitle "S"`
	if calls[0].args[1] != want {
		t.Errorf("script = %q, want %q", calls[0].args[1], want)
	}
}

func TestDesktopNotifier_RunnerError(t *testing.T) {
	var calls []recordedCommand
	boom := errors.New("no display")
	n := &DesktopNotifier{goos: "linux", run: fakeRunner(&calls, boom)}

	if err := n.Notify(context.Background(), sampleTournament()); !errors.Is(err, boom) {
		t.Errorf("Notify() error = %v, want %v", err, boom)
	}
}

func TestAppleQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
	}

	for _, tt := range tests {
		if got := appleQuote(tt.in); got != tt.want {
			t.Errorf("appleQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
