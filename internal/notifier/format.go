package notifier

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/padel-events/internal/filter"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

const (
	// DefaultGreeting opens every email.
	DefaultGreeting = "Hey padelistos !"
	// DesktopTitle is the title of desktop notifications.
	DesktopTitle = "Nouveau tournoi 4PADEL"
)

// Format holds the settings shared by message renderings.
type Format struct {
	PageURL        string
	Greeting       string
	EveningHour    int
	EveningKeyword string
	Levels         []string // named in the digest subject; defaults to filter.DefaultLevels
}

func (f Format) levels() string {
	levels := f.Levels
	if len(levels) == 0 {
		levels = filter.DefaultLevels
	}
	return strings.Join(levels, "/")
}

func (f Format) greeting() string {
	if g := strings.TrimSpace(f.Greeting); g != "" {
		return g
	}
	return DefaultGreeting
}

// FormatLine renders a tournament on one line.
func FormatLine(t *tournament.Tournament) string {
	return fmt.Sprintf("%s %s - %s le %s à %s", t.Level, t.Name, t.Club, t.Date, t.Time)
}

// DesktopMessage renders the desktop notification for t.
func DesktopMessage(t *tournament.Tournament) Message {
	return Message{
		Title: DesktopTitle,
		Body:  FormatLine(t),
	}
}

// EmailMessage renders the per-tournament email for t.
func (f Format) EmailMessage(t *tournament.Tournament) Message {
	return Message{
		Title: fmt.Sprintf("%s: %s %s", DesktopTitle, t.Level, t.Name),
		Body:  fmt.Sprintf("%s\n\n%s\n\nPage: %s", f.greeting(), FormatLine(t), f.PageURL),
	}
}

// DigestMessage renders one email listing every tournament, evening ones
// first in their own section.
func (f Format) DigestMessage(tournaments []*tournament.Tournament) Message {
	var all, evening []string
	for _, t := range tournaments {
		line := "- " + FormatLine(t)
		all = append(all, line)
		if t.IsEvening(f.EveningHour, f.EveningKeyword) {
			evening = append(evening, line)
		}
	}

	sections := []string{f.greeting(), ""}
	sections = append(sections, "Tournois en soirée:")
	sections = append(sections, orNone(evening)...)
	sections = append(sections, "", "Tous les nouveaux:")
	sections = append(sections, orNone(all)...)
	sections = append(sections, "", "Page: "+f.PageURL)

	return Message{
		Title: fmt.Sprintf("%d nouveau(x) tournoi(x) 4PADEL (%s)", len(tournaments), f.levels()),
		Body:  strings.Join(sections, "\n"),
	}
}

func orNone(lines []string) []string {
	if len(lines) == 0 {
		return []string{"(aucun)"}
	}
	return lines
}
