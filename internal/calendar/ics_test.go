package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

const pageURL = "https://www.4padel.fr/tournois"

var now = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func TestGenerateICS(t *testing.T) {
	tt := tournament.New("P250", "4PADEL Nation", "P250 Matinale", "14/02/2026", "9:30", "Ouvert à tous")

	ics := GenerateICS([]*tournament.Tournament{tt}, now, pageURL)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:" + tt.Identity().ID() + "@padel-events",
		"DTSTAMP:20260110T080000Z",
		"DTSTART:20260214T093000\r\n",
		"DTEND:20260214T123000\r\n",
		"SUMMARY:P250 P250 Matinale",
		"DESCRIPTION:P250 Matinale | Ouvert à tous\\n\\n" + pageURL,
		"LOCATION:4PADEL Nation",
		"URL:" + pageURL,
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing %q in:\n%s", field, ics)
		}
	}

	if strings.Contains(ics, "DTSTART:20260214T093000Z") {
		t.Error("DTSTART should be floating local time")
	}
}

func TestGenerateICS_SkipsUnparsable(t *testing.T) {
	tournaments := []*tournament.Tournament{
		tournament.New("P100", "A", "No date", "", "", ""),
		tournament.New("P100", "B", "Bad day", "31/02/2026", "10:00", ""),
		tournament.New("P100", "C", "No time", "01/03/2026", "", ""),
		tournament.New("P100", "D", "Soirée", "01/03/2026", "19:00", ""),
	}

	ics := GenerateICS(tournaments, now, pageURL)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("got %d events, want 1", got)
	}
	if !strings.Contains(ics, "DTSTART:20260301T190000") {
		t.Error("expected the parsable tournament")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(nil, now, pageURL)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("unexpected calendar:\n%s", ics)
	}
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty input should produce no events")
	}
}

func TestStartTime(t *testing.T) {
	tests := []struct {
		date   string
		clock  string
		want   time.Time
		wantOK bool
	}{
		{"14/02/2026", "9:30", time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC), true},
		{"14/02/2026", "17:00", time.Date(2026, 2, 14, 17, 0, 0, 0, time.UTC), true},
		{"31/02/2026", "10:00", time.Time{}, false},
		{"", "10:00", time.Time{}, false},
		{"14/02/2026", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.date+" "+tt.clock, func(t *testing.T) {
			got, ok := StartTime(tournament.New("P100", "", "", tt.date, tt.clock, ""))
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("StartTime() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Simple text", "Simple text"},
		{"Text, with comma", "Text\\, with comma"},
		{"Text; with semicolon", "Text\\; with semicolon"},
		{"Line1\nLine2", "Line1\\nLine2"},
		{"Back\\slash", "Back\\\\slash"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeICS(tt.input); got != tt.want {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
