package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pfrederiksen/padel-events/internal/crypto"
)

const (
	// EnvPrefix prefixes every configuration variable.
	EnvPrefix = "PADEL_"
	// EnvConfig names the configuration file when --config is not given.
	EnvConfig = "PADEL_CONFIG"
	// EnvSecret holds the passphrase for sealed secrets.
	EnvSecret = "PADEL_SECRET"
)

// sections are the nested keys reachable from the environment, e.g.
// PADEL_EMAIL_HOST -> email.host.
var sections = []string{"scrape", "email", "telegram", "twitter"}

// ResolvePath returns the configuration file to load: explicit, else
// $PADEL_CONFIG, else the XDG config file when it exists. An empty result
// means defaults and environment only.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	if path, err := xdg.SearchConfigFile(appName + "/config.yaml"); err == nil {
		return path
	}
	return ""
}

// Load builds a Config by layering defaults, an optional file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) at path, if not empty
//  3. env (prefix PADEL_)
//
// Sealed secrets are opened with the passphrase in PADEL_SECRET and the
// result is validated.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.applyListDefaults()

	if err := cfg.openSecrets(crypto.NewEncryptor(os.Getenv(EnvSecret))); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps PADEL_LOG_LEVEL to log_level and PADEL_EMAIL_HOST to
// email.host. Variables that are not settings are skipped.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if s == "config" || s == "secret" {
		return ""
	}
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(s, section+"_"); ok {
			return section + "." + rest
		}
	}
	return s
}

// secrets returns the settings that may hold sealed values.
func (c *Config) secrets() []*string {
	return []*string{
		&c.Email.Password,
		&c.Telegram.BotToken,
		&c.Twitter.APIKey,
		&c.Twitter.APISecret,
		&c.Twitter.AccessToken,
		&c.Twitter.AccessSecret,
	}
}

func (c *Config) openSecrets(enc *crypto.Encryptor) error {
	if err := enc.OpenAll(c.secrets()...); err != nil {
		if errors.Is(err, crypto.ErrNoPassphrase) {
			return fmt.Errorf("%w: sealed secret found but %s is not set", ErrInvalidConfig, EnvSecret)
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Redacted returns a copy of c with every secret replaced by a marker.
func (c *Config) Redacted() *Config {
	out := *c
	out.Levels = append([]string(nil), c.Levels...)
	out.Scrape.CookieLabels = append([]string(nil), c.Scrape.CookieLabels...)
	out.Email.To = append([]string(nil), c.Email.To...)
	for _, s := range out.secrets() {
		if *s != "" {
			*s = "********"
		}
	}
	return &out
}

// WriteDefault writes the commented default configuration to path. It
// refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists: %w", path, fs.ErrExist)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, DefaultYAML(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
