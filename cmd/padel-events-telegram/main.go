package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/padel-events/internal/calendar"
	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/telegram"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

var (
	configPath     = flag.String("config", "", "Config file (default $PADEL_CONFIG or $XDG_CONFIG_HOME/padel-events/config.yaml)")
	tournamentFile = flag.String("tournaments-file", "", "Path to the JSON output of padel-events --format json (or read from stdin)")
	dryRun         = flag.Bool("dry-run", false, "Print messages without sending")
	maxMessages    = flag.Int("max-messages", 10, "Maximum number of messages to send")
	levelFilter    = flag.String("level", "", "Only send messages for this level (e.g. P250)")
	hidePast       = flag.Bool("hide-past", true, "Filter out tournaments that already started")
	daysAhead      = flag.Int("days-ahead", 0, "Only send tournaments within N days (0 = disabled)")
)

// filterByLevel keeps tournaments of level
func filterByLevel(tournaments []*tournament.Tournament, level string) []*tournament.Tournament {
	if level == "" {
		return tournaments
	}
	filtered := make([]*tournament.Tournament, 0)
	for _, t := range tournaments {
		if strings.EqualFold(t.Level, level) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// filterByTime drops past tournaments and those beyond the days-ahead window.
// Tournaments without a usable date are kept.
func filterByTime(tournaments []*tournament.Tournament, now time.Time, hidePastTournaments bool, daysAheadFilter int) []*tournament.Tournament {
	if !hidePastTournaments && daysAheadFilter <= 0 {
		return tournaments
	}

	filtered := make([]*tournament.Tournament, 0)
	for _, t := range tournaments {
		start, ok := calendar.StartTime(t)
		if ok {
			// StartTime is wall-clock; compare it as local time
			local := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
			if hidePastTournaments && local.Before(now) {
				continue
			}
			if daysAheadFilter > 0 && local.After(now.AddDate(0, 0, daysAheadFilter)) {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// readTournaments reads the new tournaments from file or stdin
func readTournaments(r io.Reader) ([]*tournament.Tournament, error) {
	var result struct {
		New []*tournament.Tournament `json:"new"`
	}

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return result.New, nil
}

func openInput(filePath string) (io.ReadCloser, error) {
	if filePath == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening tournaments file: %w", err)
	}
	return f, nil
}

// validateFlags checks the numeric flags
func validateFlags(maxMsgs, days int) error {
	if maxMsgs < 1 {
		return fmt.Errorf("--max-messages must be at least 1, got %d", maxMsgs)
	}
	if days < 0 {
		return fmt.Errorf("--days-ahead must not be negative, got %d", days)
	}
	return nil
}

func main() {
	flag.Parse()

	if err := validateFlags(*maxMessages, *daysAhead); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	in, err := openInput(*tournamentFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tournaments, err := readTournaments(in)
	_ = in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading tournaments: %v\n", err)
		os.Exit(1)
	}

	if len(tournaments) == 0 {
		fmt.Println("No new tournaments to send")
		os.Exit(0)
	}

	tournaments = filterByLevel(tournaments, *levelFilter)
	tournaments = filterByTime(tournaments, time.Now(), *hidePast, *daysAhead)

	if len(tournaments) > *maxMessages {
		tournaments = tournaments[:*maxMessages]
	}

	if len(tournaments) == 0 {
		fmt.Println("No tournaments match criteria")
		os.Exit(0)
	}

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("DRY RUN MODE - Would send %d messages:\n\n", len(tournaments))
		for i, t := range tournaments {
			msg := telegram.FormatTournament(t, cfg.URL)
			fmt.Printf("--- Message %d/%d ---\n", i+1, len(tournaments))
			fmt.Println(msg)
			fmt.Printf("\n(Length: %d characters)\n\n", len(msg))
		}
		os.Exit(0)
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing Telegram client: %v (set telegram.bot_token and telegram.chat_id)\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for i, t := range tournaments {
		if err := client.SendMessage(ctx, telegram.FormatTournament(t, cfg.URL)); err != nil {
			fmt.Fprintf(os.Stderr, "Error sending message for %s: %v\n", t.Identity(), err)
			os.Exit(1)
		}

		// Rate limiting: wait between messages
		if i < len(tournaments)-1 {
			time.Sleep(1 * time.Second)
		}
	}

	fmt.Printf("Successfully sent %d message(s)\n", len(tournaments))
}
