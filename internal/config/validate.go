package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pfrederiksen/padel-events/internal/filter"
	"github.com/pfrederiksen/padel-events/internal/logger"
)

// Validate checks the configuration and normalizes the level list.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be an http(s) URL, got %q", ErrInvalidConfig, c.URL)
	}

	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}

	levels, err := filter.ParseLevels(strings.Join(c.Levels, ","))
	if err != nil {
		return fmt.Errorf("%w: levels: %v", ErrInvalidConfig, err)
	}
	c.Levels = levels

	if c.IntervalMinutes < 1 {
		return fmt.Errorf("%w: interval_minutes must be at least 1, got %d", ErrInvalidConfig, c.IntervalMinutes)
	}
	if c.EveningHour < 0 || c.EveningHour > 23 {
		return fmt.Errorf("%w: evening_hour must be between 0 and 23, got %d", ErrInvalidConfig, c.EveningHour)
	}

	switch c.Scrape.Renderer {
	case "browser", "http":
	default:
		return fmt.Errorf("%w: scrape.renderer must be browser or http, got %q", ErrInvalidConfig, c.Scrape.Renderer)
	}
	if c.Scrape.ScrollRounds < 0 || c.Scrape.ScrollPixels < 0 || c.Scrape.ScrollPauseMS < 0 {
		return fmt.Errorf("%w: scroll settings must not be negative", ErrInvalidConfig)
	}
	if c.Scrape.WaitTimeoutMS <= 0 || c.Scrape.NavigationTimeoutMS <= 0 {
		return fmt.Errorf("%w: scrape timeouts must be positive", ErrInvalidConfig)
	}

	return nil
}

// Validate reports ErrEmailNotConfigured, naming the missing keys, when a
// required setting is absent.
func (e EmailConfig) Validate() error {
	var missing []string
	if e.Host == "" {
		missing = append(missing, "host")
	}
	if e.Port <= 0 {
		missing = append(missing, "port")
	}
	if e.Username == "" {
		missing = append(missing, "username")
	}
	if e.Password == "" {
		missing = append(missing, "password")
	}
	if e.From == "" {
		missing = append(missing, "from")
	}
	if len(e.Recipients()) == 0 {
		missing = append(missing, "to")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrEmailNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}
