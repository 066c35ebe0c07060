package watcher

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/metrics"
	"github.com/pfrederiksen/padel-events/internal/notifier"
	"github.com/pfrederiksen/padel-events/internal/scraper"
	"github.com/pfrederiksen/padel-events/internal/storage"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// fakeSource returns its batches in turn, repeating the last one.
type fakeSource struct {
	mu      sync.Mutex
	batches [][]*tournament.Tournament
	err     error
	calls   int
}

func (s *fakeSource) FetchTournaments(ctx context.Context) ([]*tournament.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	i := s.calls - 1
	if i >= len(s.batches) {
		i = len(s.batches) - 1
	}
	return s.batches[i], nil
}

type recordingNotifier struct {
	name string
	err  error
	sent []string
}

func (n *recordingNotifier) Name() string { return n.name }

func (n *recordingNotifier) Notify(ctx context.Context, t *tournament.Tournament) error {
	n.sent = append(n.sent, t.Name)
	return n.err
}

type recordingEmail struct {
	recordingNotifier
	digests [][]string
}

func (n *recordingEmail) NotifyDigest(ctx context.Context, ts []*tournament.Tournament) error {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name)
	}
	n.digests = append(n.digests, names)
	return n.err
}

// failingStore wraps a Storage and fails SaveIdentities.
type failingStore struct {
	*storage.Storage
}

func (s failingStore) SaveIdentities(tournament.IdentitySet) error {
	return errors.New("disk full")
}

func marville() *tournament.Tournament {
	return tournament.New("P100", "4PADEL Marville", "P100 Soirée", "09/01/2026", "17:00", "")
}

func newStorage(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.New(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, &bytes.Buffer{})
}

func TestEngineCheck(t *testing.T) {
	convey.Convey("Given an engine with an empty state", t, func() {
		ctx := context.Background()
		store := newStorage(t)
		source := &fakeSource{batches: [][]*tournament.Tournament{{marville()}}}
		desktop := &recordingNotifier{name: "desktop"}
		engine := New(source, store, WithNotifiers(desktop), WithLogger(quietLogger()))

		convey.Convey("When a single tournament is scraped", func() {
			result, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then it is new, notified and persisted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Count, convey.ShouldEqual, 1)
				convey.So(result.Scraped, convey.ShouldEqual, 1)
				convey.So(result.RunID, convey.ShouldNotBeEmpty)
				convey.So(desktop.sent, convey.ShouldResemble, []string{"P100 Soirée"})

				persisted := store.LoadIdentities()
				convey.So(len(persisted), convey.ShouldEqual, 1)
				convey.So(persisted.Has(marville().Identity()), convey.ShouldBeTrue)
				convey.So(engine.Phase(), convey.ShouldEqual, PhaseIdle)
			})

			convey.Convey("Then the batch artifact is written", func() {
				batch, err := store.LoadBatch()
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(batch), convey.ShouldEqual, 1)
			})

			convey.Convey("And the same batch is scraped again", func() {
				again, err := engine.Check(ctx, RunOptions{})

				convey.Convey("Then nothing is new", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(again.Count, convey.ShouldEqual, 0)
					convey.So(len(desktop.sent), convey.ShouldEqual, 1)
				})
			})
		})

		convey.Convey("When the batch holds a level outside the allowed set", func() {
			elite := tournament.New("P500", "4PADEL Nation", "P500 Elite", "10/01/2026", "10:00", "")
			source.batches = [][]*tournament.Tournament{{marville(), elite}}

			result, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then it is neither notified nor persisted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Count, convey.ShouldEqual, 1)
				convey.So(desktop.sent, convey.ShouldResemble, []string{"P100 Soirée"})
				convey.So(store.LoadIdentities().Has(elite.Identity()), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the source fails", func() {
			convey.So(store.SaveIdentities(tournament.NewIdentitySet(marville().Identity())), convey.ShouldBeNil)
			source.err = scraper.ErrSelectorTimeout

			_, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then the run fails and state is untouched", func() {
				convey.So(errors.Is(err, ErrScrapeFailed), convey.ShouldBeTrue)
				convey.So(errors.Is(err, scraper.ErrSelectorTimeout), convey.ShouldBeTrue)
				convey.So(len(store.LoadIdentities()), convey.ShouldEqual, 1)
				convey.So(desktop.sent, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When nothing survives filtering", func() {
			source.batches = [][]*tournament.Tournament{{
				tournament.New("P1000", "4PADEL Nation", "Elite", "10/01/2026", "10:00", ""),
			}}

			_, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then it is a scrape failure without state", func() {
				convey.So(errors.Is(err, ErrScrapeFailed), convey.ShouldBeTrue)
				convey.So(errors.Is(err, storage.ErrEmptyBatch), convey.ShouldBeTrue)
				convey.So(store.LoadIdentities(), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a tournament disappears and comes back", func() {
			other := tournament.New("P250", "4PADEL Nation", "P250 Matinale", "14/02/2026", "9:30", "Ouvert à tous")
			source.batches = [][]*tournament.Tournament{
				{marville(), other},
				{other},
				{marville(), other},
			}

			first, _ := engine.Check(ctx, RunOptions{})
			second, _ := engine.Check(ctx, RunOptions{})
			third, _ := engine.Check(ctx, RunOptions{})

			convey.Convey("Then it is never reported twice", func() {
				convey.So(first.Count, convey.ShouldEqual, 2)
				convey.So(second.Count, convey.ShouldEqual, 0)
				convey.So(third.Count, convey.ShouldEqual, 0)
				convey.So(store.LoadIdentities().Has(marville().Identity()), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a channel fails", func() {
			desktop.err = errors.New("no display")
			telegram := &recordingNotifier{name: "telegram"}
			engine = New(source, store, WithNotifiers(desktop, telegram), WithLogger(quietLogger()), WithMetrics(metrics.New()))

			result, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then the other channels and persistence still happen", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Count, convey.ShouldEqual, 1)
				convey.So(telegram.sent, convey.ShouldResemble, []string{"P100 Soirée"})
				convey.So(len(store.LoadIdentities()), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When saving state fails", func() {
			engine = New(source, failingStore{store}, WithNotifiers(desktop), WithLogger(quietLogger()))

			_, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then the run reports a persist failure", func() {
				convey.So(errors.Is(err, ErrPersistFailed), convey.ShouldBeTrue)
				convey.So(store.LoadIdentities(), convey.ShouldBeEmpty)
			})
		})
	})
}

func TestEngineRunModes(t *testing.T) {
	convey.Convey("Given new tournaments and every channel", t, func() {
		ctx := context.Background()
		store := newStorage(t)
		source := &fakeSource{batches: [][]*tournament.Tournament{{
			marville(),
			tournament.New("P250", "4PADEL Nation", "P250 Matinale", "14/02/2026", "9:30", ""),
		}}}
		desktop := &recordingNotifier{name: "desktop"}
		email := &recordingEmail{recordingNotifier: recordingNotifier{name: "email"}}
		var printed bytes.Buffer

		engine := New(source, store,
			WithNotifiers(desktop),
			WithEmail(email),
			WithDryRunNotifier(notifier.NewDryRunNotifier(&printed)),
			WithLogger(quietLogger()),
		)

		convey.Convey("When running in dry-run mode", func() {
			result, err := engine.Check(ctx, RunOptions{DryRun: true, Email: true})

			convey.Convey("Then nothing is sent but state is persisted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Count, convey.ShouldEqual, 2)
				convey.So(desktop.sent, convey.ShouldBeEmpty)
				convey.So(email.sent, convey.ShouldBeEmpty)
				convey.So(email.digests, convey.ShouldBeEmpty)
				convey.So(strings.Count(printed.String(), "[dry-run]"), convey.ShouldEqual, 2)
				convey.So(len(store.LoadIdentities()), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When email is requested per tournament", func() {
			_, err := engine.Check(ctx, RunOptions{Email: true})

			convey.Convey("Then one email per tournament is sent in sorted order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(email.sent, convey.ShouldResemble, []string{"P100 Soirée", "P250 Matinale"})
				convey.So(email.digests, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a batch email is requested", func() {
			_, err := engine.Check(ctx, RunOptions{Email: true, BatchEmail: true})

			convey.Convey("Then a single digest is sent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(email.sent, convey.ShouldBeEmpty)
				convey.So(email.digests, convey.ShouldResemble, [][]string{{"P100 Soirée", "P250 Matinale"}})
				convey.So(len(desktop.sent), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When email is not requested", func() {
			_, err := engine.Check(ctx, RunOptions{})

			convey.Convey("Then no email is sent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(email.sent, convey.ShouldBeEmpty)
				convey.So(email.digests, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When email is requested but not configured", func() {
			engine = New(source, store, WithNotifiers(desktop), WithLogger(quietLogger()))
			result, err := engine.Check(ctx, RunOptions{Email: true, BatchEmail: true})

			convey.Convey("Then the run still succeeds", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Count, convey.ShouldEqual, 2)
			})
		})
	})
}

func TestEngineInit(t *testing.T) {
	convey.Convey("Given a state holding an old tournament", t, func() {
		ctx := context.Background()
		store := newStorage(t)
		old := tournament.Identity{Club: "Old Club", Date: "01/01/2025", Time: "10:00", Name: "Old"}
		convey.So(store.SaveIdentities(tournament.NewIdentitySet(old)), convey.ShouldBeNil)

		source := &fakeSource{batches: [][]*tournament.Tournament{{marville()}}}
		desktop := &recordingNotifier{name: "desktop"}
		engine := New(source, store, WithNotifiers(desktop), WithLogger(quietLogger()))

		convey.Convey("When initializing", func() {
			result, err := engine.Init(ctx)

			convey.Convey("Then the state is replaced by the current batch without notifying", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Scraped, convey.ShouldEqual, 1)
				convey.So(result.Count, convey.ShouldEqual, 0)
				convey.So(desktop.sent, convey.ShouldBeEmpty)

				state := store.LoadIdentities()
				convey.So(len(state), convey.ShouldEqual, 1)
				convey.So(state.Has(old), convey.ShouldBeFalse)
				convey.So(state.Has(marville().Identity()), convey.ShouldBeTrue)
			})

			convey.Convey("Then a following check finds nothing new", func() {
				again, err := engine.Check(ctx, RunOptions{})
				convey.So(err, convey.ShouldBeNil)
				convey.So(again.Count, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When initializing fails to scrape", func() {
			source.err = scraper.ErrNavigation
			_, err := engine.Init(ctx)

			convey.Convey("Then the old state is kept", func() {
				convey.So(errors.Is(err, ErrScrapeFailed), convey.ShouldBeTrue)
				convey.So(store.LoadIdentities().Has(old), convey.ShouldBeTrue)
			})
		})
	})
}

func TestEngineWatch(t *testing.T) {
	convey.Convey("Given an engine watching with a short interval", t, func() {
		store := newStorage(t)
		source := &fakeSource{err: scraper.ErrNavigation}
		engine := New(source, store, WithLogger(quietLogger()))
		engine.minInterval = time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		var reports int
		var failures int

		err := engine.Watch(ctx, time.Millisecond, RunOptions{}, func(r *Result, err error) {
			reports++
			if errors.Is(err, ErrScrapeFailed) {
				failures++
			}
			if reports == 3 {
				cancel()
			}
		})

		convey.Convey("Then failed runs are reported and the loop continues until cancelled", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(reports, convey.ShouldEqual, 3)
			convey.So(failures, convey.ShouldEqual, 3)
		})
	})
}

func TestEngineWatch_MinimumInterval(t *testing.T) {
	store := newStorage(t)
	source := &fakeSource{batches: [][]*tournament.Tournament{{marville()}}}
	engine := New(source, store, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- engine.Watch(ctx, time.Millisecond, RunOptions{}, func(*Result, error) {})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not stop after cancel")
	}

	source.mu.Lock()
	calls := source.calls
	source.mu.Unlock()
	if calls != 1 {
		t.Errorf("source called %d times in 100ms, want 1 with the one-minute minimum", calls)
	}
}
