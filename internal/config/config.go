// Package config defines the padel-events configuration and how it is loaded.
//
// Values are layered, lowest precedence first: built-in defaults (New), an
// optional YAML file, PADEL_* environment variables, then command-line flags
// applied by the caller.
package config

import (
	"embed"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "padel-events"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// DataDir holds the state file, the batch artifact and debug captures.
	DataDir string `koanf:"data_dir" yaml:"data_dir"`

	// URL is the tournament listing page.
	URL string `koanf:"url" yaml:"url"`

	// Levels lists the allowed tournament levels.
	Levels []string `koanf:"levels" yaml:"levels"`

	// IntervalMinutes is the delay between checks in watch mode.
	IntervalMinutes int `koanf:"interval_minutes" yaml:"interval_minutes"`

	// EveningHour and EveningKeyword decide which tournaments the digest
	// lists as evening ones.
	EveningHour    int    `koanf:"evening_hour" yaml:"evening_hour"`
	EveningKeyword string `koanf:"evening_keyword" yaml:"evening_keyword"`

	// MetricsAddr enables the Prometheus endpoint in watch mode, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr" yaml:"metrics_addr"`

	Scrape   ScrapeConfig   `koanf:"scrape" yaml:"scrape"`
	Email    EmailConfig    `koanf:"email" yaml:"email"`
	Telegram TelegramConfig `koanf:"telegram" yaml:"telegram"`
	Twitter  TwitterConfig  `koanf:"twitter" yaml:"twitter"`
}

// ScrapeConfig controls page rendering.
type ScrapeConfig struct {
	// Renderer is "browser" (headless Chrome) or "http" (no JavaScript).
	Renderer            string   `koanf:"renderer" yaml:"renderer"`
	Headless            bool     `koanf:"headless" yaml:"headless"`
	NavigationTimeoutMS int      `koanf:"navigation_timeout_ms" yaml:"navigation_timeout_ms"`
	WaitTimeoutMS       int      `koanf:"wait_timeout_ms" yaml:"wait_timeout_ms"`
	ScrollRounds        int      `koanf:"scroll_rounds" yaml:"scroll_rounds"`
	ScrollPauseMS       int      `koanf:"scroll_pause_ms" yaml:"scroll_pause_ms"`
	ScrollPixels        int      `koanf:"scroll_pixels" yaml:"scroll_pixels"`
	CookieLabels        []string `koanf:"cookie_labels" yaml:"cookie_labels"`
	CaptureDebug        bool     `koanf:"capture_debug" yaml:"capture_debug"`
}

// EmailConfig holds SMTP settings.
type EmailConfig struct {
	Host     string   `koanf:"host" yaml:"host"`
	Port     int      `koanf:"port" yaml:"port"`
	Username string   `koanf:"username" yaml:"username"`
	Password string   `koanf:"password" yaml:"password"`
	From     string   `koanf:"from" yaml:"from"`
	To       []string `koanf:"to" yaml:"to"`
	UseSSL   bool     `koanf:"use_ssl" yaml:"use_ssl"`
	UseTLS   bool     `koanf:"use_tls" yaml:"use_tls"`
	Greeting string   `koanf:"greeting" yaml:"greeting"`
}

// TelegramConfig holds Telegram bot credentials.
type TelegramConfig struct {
	BotToken string `koanf:"bot_token" yaml:"bot_token"`
	ChatID   string `koanf:"chat_id" yaml:"chat_id"`
}

// TwitterConfig holds Twitter OAuth1 credentials.
type TwitterConfig struct {
	APIKey       string `koanf:"api_key" yaml:"api_key"`
	APISecret    string `koanf:"api_secret" yaml:"api_secret"`
	AccessToken  string `koanf:"access_token" yaml:"access_token"`
	AccessSecret string `koanf:"access_secret" yaml:"access_secret"`
}

var (
	defaultLevels       = []string{"P100", "P250"}
	defaultCookieLabels = []string{"Tout accepter", "Accepter", "J'accepte", "Accept", "Agree", "OK"}
)

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		DataDir:         DefaultDataDir(),
		URL:             "https://www.4padel.fr/tournois",
		IntervalMinutes: 15,
		EveningHour:     18,
		EveningKeyword:  "soir",
		Scrape: ScrapeConfig{
			Renderer:            "browser",
			Headless:            true,
			NavigationTimeoutMS: 60000,
			WaitTimeoutMS:       15000,
			ScrollRounds:        12,
			ScrollPauseMS:       800,
			ScrollPixels:        2000,
		},
		Email: EmailConfig{
			Port:     587,
			UseTLS:   true,
			Greeting: "Hey padelistos !",
		},
	}
}

// applyListDefaults fills list settings left empty. Lists are not part of
// New so that a configured list replaces the default instead of merging
// with it.
func (c *Config) applyListDefaults() {
	if len(c.Levels) == 0 {
		c.Levels = append([]string(nil), defaultLevels...)
	}
	if len(c.Scrape.CookieLabels) == 0 {
		c.Scrape.CookieLabels = append([]string(nil), defaultCookieLabels...)
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/padel-events/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/padel-events.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// DefaultYAML returns the commented default configuration file.
func DefaultYAML() []byte {
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return data
}

// Interval returns the watch interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// NavigationTimeout returns the page load timeout.
func (s ScrapeConfig) NavigationTimeout() time.Duration {
	return time.Duration(s.NavigationTimeoutMS) * time.Millisecond
}

// WaitTimeout returns how long to wait for tournament cards.
func (s ScrapeConfig) WaitTimeout() time.Duration {
	return time.Duration(s.WaitTimeoutMS) * time.Millisecond
}

// ScrollPause returns the pause before each scroll round.
func (s ScrapeConfig) ScrollPause() time.Duration {
	return time.Duration(s.ScrollPauseMS) * time.Millisecond
}

// Recipients returns the trimmed, non-empty recipient addresses. Entries may
// themselves be comma-separated.
func (e EmailConfig) Recipients() []string {
	var out []string
	for _, entry := range e.To {
		for _, addr := range strings.Split(entry, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				out = append(out, addr)
			}
		}
	}
	return out
}

// Enabled reports whether any email setting was provided.
func (e EmailConfig) Enabled() bool {
	return e.Host != "" || e.Username != "" || e.From != "" || len(e.Recipients()) > 0
}

// Enabled reports whether both the bot token and the chat ID are set.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Enabled reports whether all four credentials are set.
func (t TwitterConfig) Enabled() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessSecret != ""
}
