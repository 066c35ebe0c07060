package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/notifier"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

var (
	configPath     = flag.String("config", "", "Config file (default $PADEL_CONFIG or $XDG_CONFIG_HOME/padel-events/config.yaml)")
	tournamentFile = flag.String("tournaments-file", "", "Path to the JSON output of padel-events --format json (or read from stdin)")
	dryRun         = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets      = flag.Int("max-tweets", 10, "Maximum number of tweets to post")
	levelFilter    = flag.String("level", "", "Only tweet tournaments of this level")
)

func main() {
	flag.Parse()

	if *maxTweets < 1 {
		fmt.Fprintf(os.Stderr, "Error: --max-tweets must be at least 1, got %d\n", *maxTweets)
		os.Exit(1)
	}

	// Read tournaments from file or stdin
	var reader io.Reader
	if *tournamentFile != "" {
		f, err := os.Open(*tournamentFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening tournaments file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	var result struct {
		New []*tournament.Tournament `json:"new"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(result.New) == 0 {
		fmt.Println("No new tournaments to tweet")
		return
	}

	tournaments := result.New
	if *levelFilter != "" {
		filtered := make([]*tournament.Tournament, 0)
		for _, t := range tournaments {
			if t.Level == *levelFilter {
				filtered = append(filtered, t)
			}
		}
		tournaments = filtered
	}

	if len(tournaments) > *maxTweets {
		tournaments = tournaments[:*maxTweets]
	}

	if len(tournaments) == 0 {
		fmt.Println("No tournaments match criteria")
		return
	}

	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier(os.Stdout)
		fmt.Printf("DRY RUN MODE - Would tweet %d tournaments:\n\n", len(tournaments))
	} else {
		cfg, err := config.Load(config.ResolvePath(*configPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		client, err := notifier.NewTwitterNotifier(cfg.Twitter, cfg.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	ctx := context.Background()
	for _, t := range tournaments {
		if err := tw.Notify(ctx, t); err != nil {
			fmt.Fprintf(os.Stderr, "Error posting tweet: %v\n", err)
			os.Exit(1)
		}
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d tweets\n", len(tournaments))
	}
}
