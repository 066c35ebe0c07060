package cli

import (
	"context"
	"errors"
	"io"

	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/filter"
	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/metrics"
	"github.com/pfrederiksen/padel-events/internal/notifier"
	"github.com/pfrederiksen/padel-events/internal/scraper"
	"github.com/pfrederiksen/padel-events/internal/storage"
	"github.com/pfrederiksen/padel-events/internal/telegram"
	"github.com/pfrederiksen/padel-events/internal/watcher"
)

// app holds the components of one command invocation.
type app struct {
	cfg     *config.Config
	page    scraper.Page
	store   *storage.Storage
	metrics *metrics.Manager
	engine  *watcher.Engine
}

// newPage creates the page renderer selected by the configuration.
func newPage(ctx context.Context, cfg *config.Config) scraper.Page {
	if cfg.Scrape.Renderer == "http" {
		return scraper.NewDocumentPage(cfg.Scrape.NavigationTimeout())
	}
	return scraper.NewBrowserPage(ctx, scraper.BrowserOptions{
		Headless:          cfg.Scrape.Headless,
		UserAgent:         scraper.UserAgent,
		NavigationTimeout: cfg.Scrape.NavigationTimeout(),
	})
}

// scraperOptions overrides the scraper defaults with the configured values.
// Unset values keep the defaults.
func scraperOptions(cfg *config.Config, debugDir string) scraper.Options {
	opts := scraper.DefaultOptions()
	if cfg.URL != "" {
		opts.URL = cfg.URL
	}
	if len(cfg.Scrape.CookieLabels) > 0 {
		opts.CookieLabels = cfg.Scrape.CookieLabels
	}
	if d := cfg.Scrape.WaitTimeout(); d > 0 {
		opts.WaitTimeout = d
	}
	if d := cfg.Scrape.ScrollPause(); d > 0 {
		opts.ScrollPause = d
	}
	if cfg.Scrape.ScrollPixels > 0 {
		opts.ScrollPixels = cfg.Scrape.ScrollPixels
	}
	opts.ScrollRounds = cfg.Scrape.ScrollRounds
	opts.DebugDir = debugDir
	opts.CaptureDebug = cfg.Scrape.CaptureDebug
	return opts
}

// notifiers builds the per-tournament channels enabled by cfg.
func notifiers(cfg *config.Config) []notifier.Notifier {
	var out []notifier.Notifier

	if notifier.DesktopSupported() {
		out = append(out, notifier.NewDesktopNotifier())
	}

	if cfg.Telegram.Enabled() {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warn("Telegram disabled", logger.Fields{"error": err.Error()})
		} else {
			out = append(out, notifier.NewTelegramNotifier(client, cfg.URL))
		}
	}

	if cfg.Twitter.Enabled() {
		tw, err := notifier.NewTwitterNotifier(cfg.Twitter, cfg.URL)
		if err != nil {
			logger.Warn("Twitter disabled", logger.Fields{"error": err.Error()})
		} else {
			out = append(out, tw)
		}
	}

	return out
}

// emailChannel returns the email notifier, or nil when email is not
// configured.
func emailChannel(cfg *config.Config) (watcher.EmailChannel, error) {
	format := notifier.Format{
		PageURL:        cfg.URL,
		Greeting:       cfg.Email.Greeting,
		EveningHour:    cfg.EveningHour,
		EveningKeyword: cfg.EveningKeyword,
		Levels:         cfg.Levels,
	}
	email, err := notifier.NewEmailNotifier(cfg.Email, format)
	if errors.Is(err, config.ErrEmailNotConfigured) {
		if cfg.Email.Enabled() {
			logger.Warn("Email disabled", logger.Fields{"error": err.Error()})
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return email, nil
}

// newApp wires the scraper, storage, notifiers and engine. Dry-run output
// goes to out.
func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	email, err := emailChannel(cfg)
	if err != nil {
		return nil, err
	}

	page := newPage(ctx, cfg)
	m := metrics.New()

	opts := []watcher.Option{
		watcher.WithFilter(filter.New(cfg.Levels...)),
		watcher.WithNotifiers(notifiers(cfg)...),
		watcher.WithDryRunNotifier(notifier.NewDryRunNotifier(out)),
		watcher.WithMetrics(m),
	}
	if email != nil {
		opts = append(opts, watcher.WithEmail(email))
	}

	source := scraper.New(page, scraperOptions(cfg, store.Dir()))

	return &app{
		cfg:     cfg,
		page:    page,
		store:   store,
		metrics: m,
		engine:  watcher.New(source, store, opts...),
	}, nil
}

// Close releases the page renderer.
func (a *app) Close() {
	if err := a.page.Close(); err != nil {
		logger.Debug("Closing page failed", logger.Fields{"error": err.Error()})
	}
}
