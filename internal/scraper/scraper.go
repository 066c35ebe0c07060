package scraper

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

const (
	TournamentsURL = "https://www.4padel.fr/tournois"
	UserAgent      = "padel-events/1.0 (github.com/pfrederiksen/padel-events)"

	CardSelector      = ".lf-tournament-preview-container"
	LevelSelector     = ".fft p"
	ClubSelector      = "p.lf-tournament-type"
	DateBlockSelector = "p.lf-tournament-date"
)

// DefaultCookieLabels are the consent button labels tried after navigation.
var DefaultCookieLabels = []string{"Tout accepter", "Accepter", "J'accepte", "Accept", "Agree", "OK"}

// Options controls how the listing is loaded.
type Options struct {
	URL          string
	CookieLabels []string
	WaitTimeout  time.Duration
	ScrollRounds int
	ScrollPause  time.Duration
	ScrollPixels int
	DebugDir     string // where captures are written; empty disables them
	CaptureDebug bool   // also capture after a successful extraction
}

// DefaultOptions returns the settings used against the live site.
func DefaultOptions() Options {
	return Options{
		URL:          TournamentsURL,
		CookieLabels: DefaultCookieLabels,
		WaitTimeout:  15 * time.Second,
		ScrollRounds: 12,
		ScrollPause:  800 * time.Millisecond,
		ScrollPixels: 2000,
	}
}

// Scraper loads the listing page and extracts one tournament per card.
type Scraper struct {
	page Page
	opts Options
}

// New creates a Scraper driving page.
func New(page Page, opts Options) *Scraper {
	if opts.URL == "" {
		opts.URL = TournamentsURL
	}
	return &Scraper{page: page, opts: opts}
}

// FetchTournaments loads the listing and extracts every card, unfiltered.
func (s *Scraper) FetchTournaments(ctx context.Context) ([]*tournament.Tournament, error) {
	if err := s.page.Navigate(ctx, s.opts.URL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNavigation, err)
	}

	if s.page.ClickButton(ctx, s.opts.CookieLabels) {
		logger.Debug("Cookie banner dismissed", nil)
	}

	if err := s.page.WaitFor(ctx, CardSelector, s.opts.WaitTimeout); err != nil {
		s.capture(ctx, "debug_no_cards")
		return nil, fmt.Errorf("waiting for tournament cards: %w", err)
	}

	if err := s.scroll(ctx); err != nil {
		return nil, err
	}

	tournaments, err := s.extractCards(ctx)
	if err != nil {
		return nil, err
	}

	if s.opts.CaptureDebug {
		s.capture(ctx, "debug_cards")
	}

	return tournaments, nil
}

// scroll triggers lazy loading with a fixed number of scroll rounds.
func (s *Scraper) scroll(ctx context.Context) error {
	for round := 1; round <= s.opts.ScrollRounds; round++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.opts.ScrollPause):
		}

		if count, err := s.page.Count(ctx, CardSelector); err == nil {
			logger.Debug("Scroll round", logger.Fields{"round": round, "cards": count})
		}

		if err := s.page.Scroll(ctx, s.opts.ScrollPixels); err != nil {
			return fmt.Errorf("scrolling: %w", err)
		}
	}
	return nil
}

func (s *Scraper) extractCards(ctx context.Context) ([]*tournament.Tournament, error) {
	n, err := s.page.Count(ctx, CardSelector)
	if err != nil {
		return nil, fmt.Errorf("counting cards: %w", err)
	}

	tournaments := make([]*tournament.Tournament, 0, n)
	for i := 0; i < n; i++ {
		card, err := s.readCard(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("reading card %d: %w", i, err)
		}
		tournaments = append(tournaments, Extract(card))
	}

	logger.Debug("Extracted cards", logger.Fields{"cards": n})
	return tournaments, nil
}

func (s *Scraper) readCard(ctx context.Context, index int) (CardFragments, error) {
	var card CardFragments
	var err error

	if card.Level, err = s.page.Texts(ctx, CardSelector, index, LevelSelector); err != nil {
		return card, err
	}
	if card.Club, err = s.page.Texts(ctx, CardSelector, index, ClubSelector); err != nil {
		return card, err
	}
	if card.DateBlock, err = s.page.Texts(ctx, CardSelector, index, DateBlockSelector); err != nil {
		return card, err
	}
	return card, nil
}

func (s *Scraper) capture(ctx context.Context, name string) {
	if s.opts.DebugDir == "" {
		return
	}
	path, err := s.page.Capture(ctx, filepath.Join(s.opts.DebugDir, name))
	if err != nil {
		logger.Warn("Debug capture failed", logger.Fields{"name": name, "error": err.Error()})
		return
	}
	logger.Info("Debug capture written", logger.Fields{"path": path})
}
