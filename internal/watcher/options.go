package watcher

import (
	"github.com/pfrederiksen/padel-events/internal/filter"
	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/metrics"
	"github.com/pfrederiksen/padel-events/internal/notifier"
)

// Option configures an Engine.
type Option func(*Engine)

// WithFilter sets the batch normalizer. Defaults to filter.New().
func WithFilter(f *filter.Filter) Option {
	return func(e *Engine) {
		if f != nil {
			e.filter = f
		}
	}
}

// WithNotifiers adds channels notified for every new tournament.
func WithNotifiers(n ...notifier.Notifier) Option {
	return func(e *Engine) {
		e.notifiers = append(e.notifiers, n...)
	}
}

// WithEmail sets the email channel used when a run requests email.
func WithEmail(email EmailChannel) Option {
	return func(e *Engine) {
		e.email = email
	}
}

// WithDryRunNotifier sets the channel replacing all others in dry-run mode.
func WithDryRunNotifier(n notifier.Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.dryRun = n
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the logger. Defaults to logger.Default().
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
