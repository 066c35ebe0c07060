package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/filter"
	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/watcher"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var version = "dev"

var (
	flagConfig     string
	flagDataDir    string
	flagFormat     string
	flagLevels     string
	flagRenderer   string
	flagInterval   int
	flagWatch      bool
	flagDryRun     bool
	flagInit       bool
	flagEmail      bool
	flagBatchEmail bool
	flagVerbose    bool
)

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "padel-events",
		Short: "Notify newly-listed 4PADEL P100/P250 tournaments",
		Long: `A CLI tool watching the 4PADEL tournament listing.
Each check scrapes the listing, keeps the configured levels and reports only
the tournaments not seen by a previous run, by desktop notification, email,
Telegram or Twitter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $PADEL_CONFIG or $XDG_CONFIG_HOME/padel-events/config.yaml)")
	pf.StringVar(&flagDataDir, "data-dir", "", "Data directory for state and CSV files")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.StringVar(&flagLevels, "levels", "", "Comma-separated levels to keep (e.g. P100,P250)")
	pf.StringVar(&flagRenderer, "renderer", "", "Page renderer: browser or http")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	f := cmd.Flags()
	f.BoolVar(&flagWatch, "watch", false, "Check continuously")
	f.IntVar(&flagInterval, "interval", 0, "Minutes between checks with --watch (default from config, 15)")
	f.BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of sending them")
	f.BoolVar(&flagInit, "init", false, "Record the current tournaments as seen without notifying")
	f.BoolVar(&flagEmail, "email", false, "Also send email notifications")
	f.BoolVar(&flagBatchEmail, "batch-email", false, "With --email, send one summary email instead of one per tournament")

	cmd.MarkFlagsMutuallyExclusive("init", "watch")

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newEncryptCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// outputFormat validates --format.
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// loadConfig loads the configuration and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(flagConfig))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Changed("levels") {
		levels, err := filter.ParseLevels(flagLevels)
		if err != nil {
			return nil, fmt.Errorf("%w: --levels: %v", config.ErrInvalidConfig, err)
		}
		cfg.Levels = levels
	}
	if flags.Changed("renderer") {
		cfg.Scrape.Renderer = flagRenderer
	}
	if flags.Changed("interval") {
		cfg.IntervalMinutes = flagInterval
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Default().SetLevel(level)

	return cfg, nil
}

// dryRunWriter returns where dry-run notifications are printed. JSON reports
// keep standard output to themselves.
func dryRunWriter(cmd *cobra.Command, format OutputFormat) io.Writer {
	if format == FormatJSON {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if flagBatchEmail && !flagEmail {
		return fmt.Errorf("--batch-email requires --email")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, dryRunWriter(cmd, format))
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	opts := watcher.RunOptions{
		DryRun:     flagDryRun,
		Email:      flagEmail,
		BatchEmail: flagBatchEmail,
	}

	if flagInit {
		result, err := a.engine.Init(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "State initialized with %d tournaments.\n", result.Scraped)
		return nil
	}

	if flagWatch {
		if cfg.MetricsAddr != "" {
			go func() {
				if err := a.metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
					logger.Error("Metrics server stopped", logger.Fields{"addr": cfg.MetricsAddr}, err)
				}
			}()
		}

		err := a.engine.Watch(ctx, cfg.Interval(), opts, func(result *watcher.Result, err error) {
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Check failed: %v\n", err)
				return
			}
			if err := WriteOutput(out, NewOutputResult(result, opts.DryRun), format, flagVerbose); err != nil {
				logger.Warn("Writing output failed", logger.Fields{"error": err.Error()})
			}
		})
		// an interrupted watch is a normal stop
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	result, err := a.engine.Check(ctx, opts)
	if err != nil {
		return err
	}
	return WriteOutput(out, NewOutputResult(result, opts.DryRun), format, flagVerbose)
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitError
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	if code := ExitCode(err); code != ExitSuccess {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(code)
	}
}
