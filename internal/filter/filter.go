// Package filter normalizes a scraped batch of tournaments before diffing.
//
// Normalization is three fixed steps:
//   - Dedupe: keep the first occurrence of each (club, date, time, name) identity
//   - Filter: keep only allowed levels (P100 and P250 by default, case-insensitive)
//   - Sort: order by date, time, club and name, unparsable dates first
//
// Example usage:
//
//	f := filter.New("P100", "P250")
//	batch := f.Apply(scraped)
package filter

import (
	"strings"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// DefaultLevels are the tiers reported when no levels are configured.
var DefaultLevels = []string{"P100", "P250"}

// Filter holds the allowed tournament levels.
type Filter struct {
	levels map[string]bool
}

// New creates a filter allowing the given levels. With no levels it falls
// back to DefaultLevels.
func New(levels ...string) *Filter {
	if len(levels) == 0 {
		levels = DefaultLevels
	}
	f := &Filter{levels: make(map[string]bool, len(levels))}
	for _, l := range levels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			f.levels[l] = true
		}
	}
	return f
}

// Levels returns the allowed levels in upper case, in no particular order.
func (f *Filter) Levels() []string {
	out := make([]string, 0, len(f.levels))
	for l := range f.levels {
		out = append(out, l)
	}
	return out
}

// Allows reports whether the tournament's level is allowed (case-insensitive).
func (f *Filter) Allows(t *tournament.Tournament) bool {
	return f.levels[strings.ToUpper(t.Level)]
}

// Apply dedupes, filters and sorts the batch. The input slice is not modified.
func (f *Filter) Apply(tournaments []*tournament.Tournament) []*tournament.Tournament {
	unique := Dedupe(tournaments)

	kept := make([]*tournament.Tournament, 0, len(unique))
	for _, t := range unique {
		if f.Allows(t) {
			kept = append(kept, t)
		}
	}

	Sort(kept)
	return kept
}

// Dedupe keeps the first tournament of each identity, preserving order.
func Dedupe(tournaments []*tournament.Tournament) []*tournament.Tournament {
	seen := make(map[tournament.Identity]bool, len(tournaments))
	unique := make([]*tournament.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		id := t.Identity()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, t)
		}
	}
	return unique
}
