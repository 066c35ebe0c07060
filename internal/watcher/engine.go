package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/padel-events/internal/filter"
	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/metrics"
	"github.com/pfrederiksen/padel-events/internal/notifier"
	"github.com/pfrederiksen/padel-events/internal/storage"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// MinInterval is the shortest delay between watch runs.
const MinInterval = time.Minute

// Source produces the raw, unfiltered batch.
type Source interface {
	FetchTournaments(ctx context.Context) ([]*tournament.Tournament, error)
}

// Store persists the identity set and the batch artifact.
type Store interface {
	LoadIdentities() tournament.IdentitySet
	SaveIdentities(set tournament.IdentitySet) error
	SaveBatch(tournaments []*tournament.Tournament) error
}

// EmailChannel sends per-tournament emails or a single digest.
type EmailChannel interface {
	notifier.Notifier
	notifier.DigestNotifier
}

// RunOptions selects the behaviour of one check.
type RunOptions struct {
	DryRun     bool // print instead of notifying; state is still persisted
	Email      bool
	BatchEmail bool // one digest instead of one email per tournament
}

// Result describes a finished run.
type Result struct {
	RunID   string                   `json:"run_id"`
	Scraped int                      `json:"scraped"`
	New     []*tournament.Tournament `json:"new"`
	Count   int                      `json:"count"`
}

// Engine runs checks against a source and a store.
type Engine struct {
	source    Source
	store     Store
	filter    *filter.Filter
	notifiers []notifier.Notifier
	email     EmailChannel
	dryRun    notifier.Notifier
	metrics   *metrics.Manager
	log       *logger.Logger

	phase       Phase
	minInterval time.Duration
}

// New creates an Engine.
func New(source Source, store Store, opts ...Option) *Engine {
	e := &Engine{
		source:      source,
		store:       store,
		filter:      filter.New(),
		dryRun:      notifier.NewDryRunNotifier(io.Discard),
		log:         logger.Default(),
		minInterval: MinInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Phase returns the phase of the current run, PhaseIdle between runs.
func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) enter(log *logger.Logger, p Phase) {
	e.phase = p
	log.Debug("Run phase", logger.Fields{"phase": p.String()})
}

// Check runs one scrape, diff, notify and persist cycle and returns the new
// tournaments in batch order.
func (e *Engine) Check(ctx context.Context, opts RunOptions) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), New: []*tournament.Tournament{}}
	log := e.log.With(logger.Fields{"run_id": result.RunID})

	defer e.enter(log, PhaseIdle)

	batch, err := e.scrape(ctx, log)
	if err != nil {
		e.metrics.ObserveRun(metrics.OutcomeScrapeFailed, time.Since(start))
		return result, err
	}
	result.Scraped = len(batch)

	prior := e.store.LoadIdentities()
	diff := tournament.Diff(prior, batch)
	result.New = diff.New
	result.Count = len(diff.New)
	e.enter(log, PhaseDiffed)
	log.Info("Batch compared", logger.Fields{
		"scraped": len(batch),
		"known":   len(prior),
		"new":     result.Count,
	})

	e.enter(log, PhaseNotifying)
	e.notify(ctx, log, diff.New, opts)
	e.metrics.AddNew(result.Count)

	if err := e.store.SaveIdentities(prior.Union(diff.Current)); err != nil {
		e.metrics.ObserveRun(metrics.OutcomePersistFailed, time.Since(start))
		log.Error("Saving state failed", nil, err)
		return result, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	e.enter(log, PhasePersisted)

	e.metrics.ObserveRun(metrics.OutcomeSuccess, time.Since(start))
	log.Info("Run finished", logger.Fields{
		"new":      result.Count,
		"dry_run":  opts.DryRun,
		"duration": time.Since(start).String(),
	})
	return result, nil
}

// Init scrapes once and replaces the identity set with the current batch,
// without notifying.
func (e *Engine) Init(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), New: []*tournament.Tournament{}}
	log := e.log.With(logger.Fields{"run_id": result.RunID, "mode": "init"})

	defer e.enter(log, PhaseIdle)

	batch, err := e.scrape(ctx, log)
	if err != nil {
		e.metrics.ObserveRun(metrics.OutcomeScrapeFailed, time.Since(start))
		return result, err
	}
	result.Scraped = len(batch)

	if err := e.store.SaveIdentities(tournament.IdentitiesOf(batch)); err != nil {
		e.metrics.ObserveRun(metrics.OutcomePersistFailed, time.Since(start))
		log.Error("Saving state failed", nil, err)
		return result, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	e.enter(log, PhasePersisted)

	e.metrics.ObserveRun(metrics.OutcomeSuccess, time.Since(start))
	log.Info("State initialized", logger.Fields{"tournaments": len(batch)})
	return result, nil
}

// Scrape fetches and normalizes a batch without touching the identity set.
func (e *Engine) Scrape(ctx context.Context) ([]*tournament.Tournament, error) {
	defer e.enter(e.log, PhaseIdle)
	return e.scrape(ctx, e.log)
}

// scrape fetches, normalizes and archives the batch. An empty batch after
// filtering is a scrape failure.
func (e *Engine) scrape(ctx context.Context, log *logger.Logger) ([]*tournament.Tournament, error) {
	raw, err := e.source.FetchTournaments(ctx)
	if err != nil {
		log.Error("Scrape failed", nil, err)
		return nil, fmt.Errorf("%w: %w", ErrScrapeFailed, err)
	}

	batch := e.filter.Apply(raw)
	e.metrics.SetScraped(len(batch))
	log.Info("Tournaments scraped", logger.Fields{
		"raw":      len(raw),
		"filtered": len(batch),
		"levels":   e.filter.Levels(),
	})

	if err := e.store.SaveBatch(batch); err != nil {
		if errors.Is(err, storage.ErrEmptyBatch) {
			log.Error("No tournament left after filtering", logger.Fields{"raw": len(raw)}, err)
			return nil, fmt.Errorf("%w: %w", ErrScrapeFailed, err)
		}
		log.Warn("Writing batch artifact failed", logger.Fields{"error": err.Error()})
	}

	e.enter(log, PhaseScraped)
	return batch, nil
}

func (e *Engine) notify(ctx context.Context, log *logger.Logger, fresh []*tournament.Tournament, opts RunOptions) {
	for _, t := range fresh {
		log.Info("New tournament", logger.Fields{
			"id":         t.Identity().ID(),
			"tournament": notifier.FormatLine(t),
		})

		if opts.DryRun {
			e.deliver(ctx, log, e.dryRun, t)
			continue
		}

		for _, n := range e.notifiers {
			e.deliver(ctx, log, n, t)
		}
		if opts.Email && !opts.BatchEmail && e.email != nil {
			e.deliver(ctx, log, e.email, t)
		}
	}

	if !opts.Email || len(fresh) == 0 {
		return
	}
	switch {
	case opts.DryRun:
		log.Info("Email skipped in dry-run mode", nil)
	case e.email == nil:
		log.Warn("Email requested but not configured", nil)
	case opts.BatchEmail:
		err := e.email.NotifyDigest(ctx, fresh)
		e.metrics.Notification(e.email.Name(), err)
		if err != nil {
			log.Error("Digest delivery failed", logger.Fields{"channel": e.email.Name(), "tournaments": len(fresh)}, err)
		}
	}
}

// deliver sends one notification. Failures are logged and counted, never
// returned.
func (e *Engine) deliver(ctx context.Context, log *logger.Logger, n notifier.Notifier, t *tournament.Tournament) {
	err := n.Notify(ctx, t)
	e.metrics.Notification(n.Name(), err)
	if err != nil {
		log.Error("Notification failed", logger.Fields{
			"channel":    n.Name(),
			"tournament": t.Identity().String(),
		}, err)
	}
}

// Watch runs Check immediately and then every interval until ctx is done.
// Failed runs are passed to report and the loop continues. Intervals below
// one minute are raised to one minute.
func (e *Engine) Watch(ctx context.Context, interval time.Duration, opts RunOptions, report func(*Result, error)) error {
	if interval < e.minInterval {
		interval = e.minInterval
	}
	e.log.Info("Watching", logger.Fields{"interval": interval.String()})

	for {
		result, err := e.Check(ctx, opts)
		if ctx.Err() != nil {
			return nil
		}
		if report != nil {
			report(result, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}
