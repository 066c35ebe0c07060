package scraper

import "errors"

var (
	// ErrNavigation is returned when the listing page cannot be loaded.
	ErrNavigation = errors.New("navigation failed")
	// ErrSelectorTimeout is returned when a selector never appears.
	ErrSelectorTimeout = errors.New("selector not found before timeout")
	// ErrNotLoaded is returned when a page is queried before Navigate.
	ErrNotLoaded = errors.New("page not loaded")
	// ErrNoSuchElement is returned for an out-of-range element index.
	ErrNoSuchElement = errors.New("no such element")
)
