package scraper

import (
	"strings"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// CardFragments holds the text lines of one listing card, grouped by zone.
// A missing zone is an empty slice.
type CardFragments struct {
	Level     []string // `.fft p`
	Club      []string // `p.lf-tournament-type`
	DateBlock []string // `p.lf-tournament-date`, in rendered order
}

// Extract turns one card into a tournament. It never fails: fields that
// cannot be found are left empty.
//
// The date block conventionally holds a short name, the datetime phrase and a
// format/openness line, but any of them may be missing:
//   - Name is the first date-block line, whatever it contains
//   - the datetime is read from the first line matching the phrase
//   - Category is the last line that is neither a datetime phrase nor the name
func Extract(card CardFragments) *tournament.Tournament {
	level := firstNonEmpty(card.Level)
	club := firstNonEmpty(card.Club)

	var name, datetimeLine, category string
	if len(card.DateBlock) > 0 {
		name = card.DateBlock[0]
	}

	for _, line := range card.DateBlock {
		if tournament.MatchesDateTime(line) {
			datetimeLine = line
			break
		}
	}

	for i := len(card.DateBlock) - 1; i >= 0; i-- {
		line := card.DateBlock[i]
		if !tournament.MatchesDateTime(line) && line != name {
			category = line
			break
		}
	}

	date, clock := tournament.ParseDateTime(datetimeLine)
	return tournament.New(level, club, name, date, clock, category)
}

func firstNonEmpty(lines []string) string {
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
