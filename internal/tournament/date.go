package tournament

import (
	"regexp"
	"strconv"
	"strings"
)

// Matches the listing phrase "Le 09/01/2026 à 17h00".
var dateTimePattern = regexp.MustCompile(`(?i)\bLe\s+(\d{2}/\d{2}/\d{4})\s+à\s+(\d{1,2}h\d{2})\b`)

var hourPattern = regexp.MustCompile(`\b(\d{1,2})\b`)

var hourMarker = strings.NewReplacer("h", ":", "H", ":")

// MatchesDateTime reports whether text contains a datetime phrase.
func MatchesDateTime(text string) bool {
	return dateTimePattern.MatchString(text)
}

// ParseDateTime extracts the date and clock time from a phrase such as
// "Le 14/02/2026 à 9h30", returning ("14/02/2026", "9:30").
// The date is returned verbatim and is not calendar-validated; the hour keeps
// its digit width. Returns empty strings when no phrase is found.
func ParseDateTime(text string) (date, clock string) {
	m := dateTimePattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return m[1], hourMarker.Replace(m[2])
}

// SortKey holds the numeric components used to order tournaments.
// Components of a group that fails to parse are zero.
type SortKey struct {
	Year, Month, Day int
	Hour, Minute     int
}

// Key returns the numeric sort key of t. The date must split on "/" into
// exactly three integers and the time on ":" into exactly two; otherwise that
// whole group is zero.
func (t *Tournament) Key() SortKey {
	var k SortKey
	if parts, ok := atoiAll(strings.Split(t.Date, "/"), 3); ok {
		k.Day, k.Month, k.Year = parts[0], parts[1], parts[2]
	}
	if parts, ok := atoiAll(strings.Split(t.Time, ":"), 2); ok {
		k.Hour, k.Minute = parts[0], parts[1]
	}
	return k
}

// Compare returns -1, 0 or 1 comparing k with other field by field.
func (k SortKey) Compare(other SortKey) int {
	a := [5]int{k.Year, k.Month, k.Day, k.Hour, k.Minute}
	b := [5]int{other.Year, other.Month, other.Day, other.Hour, other.Minute}
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

func atoiAll(fields []string, want int) ([]int, bool) {
	if len(fields) != want {
		return nil, false
	}
	out := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// ClockHour returns the first one- or two-digit number in the time field.
// Returns false if none is found.
func (t *Tournament) ClockHour() (int, bool) {
	m := hourPattern.FindStringSubmatch(strings.TrimSpace(t.Time))
	if m == nil {
		return 0, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return h, true
}

// IsEvening reports whether the tournament starts at or after fromHour.
// When the hour cannot be parsed, it falls back to the name containing keyword
// (case-insensitive).
func (t *Tournament) IsEvening(fromHour int, keyword string) bool {
	if h, ok := t.ClockHour(); ok {
		return h >= fromHour
	}
	if keyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(keyword))
}
