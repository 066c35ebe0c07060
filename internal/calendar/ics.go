// Package calendar renders tournaments as an iCalendar (.ics) file.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// EventDuration is the assumed length of a tournament.
const EventDuration = 3 * time.Hour

// StartTime returns the tournament start as a wall-clock time. ok is false
// when the date or time does not parse or is not a real calendar date.
func StartTime(t *tournament.Tournament) (start time.Time, ok bool) {
	if t.Date == "" || t.Time == "" {
		return time.Time{}, false
	}
	start, err := time.Parse("02/01/2006 15:04", t.Date+" "+t.Time)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

// GenerateICS generates a calendar with one event per tournament that has a
// usable date and time. Times are floating: they carry no zone and are read
// as local time by the calendar client.
func GenerateICS(tournaments []*tournament.Tournament, now time.Time, pageURL string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//padel-events//padel-events//FR\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, t := range tournaments {
		start, ok := StartTime(t)
		if !ok {
			continue
		}
		writeEvent(&ics, t, start, now, pageURL)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, t *tournament.Tournament, start, now time.Time, pageURL string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@padel-events\r\n", t.Identity().ID()))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", now.UTC().Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatFloating(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatFloating(start.Add(EventDuration))))

	summary := strings.TrimSpace(t.Level + " " + t.Name)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := t.Descriptor
	if pageURL != "" {
		description = strings.TrimSpace(description + "\n\n" + pageURL)
	}
	if description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	}

	if t.Club != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(t.Club)))
	}
	if pageURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", pageURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

func formatFloating(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes text values according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
