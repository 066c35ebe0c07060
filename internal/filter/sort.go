package filter

import (
	"sort"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// Sort orders tournaments in place by (year, month, day, hour, minute, club,
// name). Equal keys keep their relative order.
func Sort(tournaments []*tournament.Tournament) {
	sort.SliceStable(tournaments, func(i, j int) bool {
		return less(tournaments[i], tournaments[j])
	})
}

func less(a, b *tournament.Tournament) bool {
	if c := a.Key().Compare(b.Key()); c != 0 {
		return c < 0
	}
	if a.Club != b.Club {
		return a.Club < b.Club
	}
	return a.Name < b.Name
}
