package config

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	// ErrEmailNotConfigured means a required email setting is missing.
	ErrEmailNotConfigured = errors.New("email not configured")
)
