package filter

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

func sample() []*tournament.Tournament {
	return []*tournament.Tournament{
		tournament.New("P250", "4PADEL Nation", "P250 Matinale", "14/02/2026", "9:30", "Ouvert à tous"),
		tournament.New("P100", "4PADEL Marville", "P100 Soirée", "09/01/2026", "17:00", ""),
		tournament.New("P500", "4PADEL Marville", "P500 Elite", "10/01/2026", "10:00", ""),
		tournament.New("p100", "4PADEL Bobigny", "P100 Midi", "09/01/2026", "12:00", ""),
		tournament.New("P100", "4PADEL Marville", "P100 Soirée", "09/01/2026", "17:00", "Complet"),
		tournament.New("", "4PADEL Inconnu", "", "", "", ""),
	}
}

func TestDedupe(t *testing.T) {
	in := sample()
	got := Dedupe(in)

	if len(got) != 5 {
		t.Fatalf("expected 5 unique tournaments, got %d", len(got))
	}
	if got[1].Category != "" {
		t.Error("expected first occurrence to be kept")
	}
	for i := 1; i < len(got); i++ {
		if got[i] == in[4] {
			t.Error("expected later duplicate to be dropped")
		}
	}

	again := Dedupe(got)
	if len(again) != len(got) {
		t.Fatalf("dedupe not idempotent: %d vs %d", len(again), len(got))
	}
	for i := range got {
		if again[i] != got[i] {
			t.Errorf("dedupe changed order at %d", i)
		}
	}
}

func TestFilterApply(t *testing.T) {
	f := New()
	in := sample()
	got := f.Apply(in)

	if len(got) != 3 {
		t.Fatalf("expected 3 tournaments, got %d", len(got))
	}

	for _, tr := range got {
		level := strings.ToUpper(tr.Level)
		if level != "P100" && level != "P250" {
			t.Errorf("unexpected level %q in filtered batch", tr.Level)
		}
	}

	wantNames := []string{"P100 Midi", "P100 Soirée", "P250 Matinale"}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("Apply()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}

	if len(in) != 6 || in[0].Name != "P250 Matinale" {
		t.Error("Apply must not modify its input")
	}
}

func TestFilterExcludesOtherLevels(t *testing.T) {
	elite := tournament.New("P500", "4PADEL Marville", "P500 Elite", "10/01/2026", "10:00", "")
	if got := New().Apply([]*tournament.Tournament{elite}); len(got) != 0 {
		t.Errorf("expected P500 to be filtered out, got %d tournaments", len(got))
	}
}

func TestFilterCustomLevels(t *testing.T) {
	f := New(" p500 ")
	got := f.Apply(sample())
	if len(got) != 1 || got[0].Level != "P500" {
		t.Errorf("expected only the P500 tournament, got %d", len(got))
	}
	if levels := f.Levels(); len(levels) != 1 || levels[0] != "P500" {
		t.Errorf("Levels() = %v, want [P500]", levels)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		in    []*tournament.Tournament
		order []string
	}{
		{
			name: "by date then time",
			in: []*tournament.Tournament{
				tournament.New("P100", "A", "late", "10/01/2026", "9:00", ""),
				tournament.New("P100", "A", "evening", "09/01/2026", "19:00", ""),
				tournament.New("P100", "A", "morning", "09/01/2026", "9:00", ""),
			},
			order: []string{"morning", "evening", "late"},
		},
		{
			name: "month beats day",
			in: []*tournament.Tournament{
				tournament.New("P100", "A", "february", "01/02/2026", "9:00", ""),
				tournament.New("P100", "A", "january", "31/01/2026", "9:00", ""),
			},
			order: []string{"january", "february"},
		},
		{
			name: "numeric hour not lexical",
			in: []*tournament.Tournament{
				tournament.New("P100", "A", "ten", "09/01/2026", "10:00", ""),
				tournament.New("P100", "A", "nine", "09/01/2026", "9:00", ""),
			},
			order: []string{"nine", "ten"},
		},
		{
			name: "club then name break ties",
			in: []*tournament.Tournament{
				tournament.New("P100", "B", "x", "09/01/2026", "9:00", ""),
				tournament.New("P100", "A", "y", "09/01/2026", "9:00", ""),
				tournament.New("P100", "A", "x", "09/01/2026", "9:00", ""),
			},
			order: []string{"x", "y", "x"},
		},
		{
			name: "unparsable date sorts first",
			in: []*tournament.Tournament{
				tournament.New("P100", "A", "dated", "01/01/0001", "0:01", ""),
				tournament.New("P100", "Z", "undated", "bientôt", "", ""),
			},
			order: []string{"undated", "dated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.in)
			for i, name := range tt.order {
				if tt.in[i].Name != name {
					t.Errorf("Sort()[%d].Name = %q, want %q", i, tt.in[i].Name, name)
				}
			}
		})
	}
}

func TestSortStableAndIdempotent(t *testing.T) {
	a := tournament.New("P100", "A", "same", "", "", "first")
	b := tournament.New("P100", "A", "same", "", "", "second")
	c := tournament.New("P100", "A", "other", "09/01/2026", "9:00", "")

	batch := []*tournament.Tournament{c, a, b}
	Sort(batch)
	if batch[0] != a || batch[1] != b || batch[2] != c {
		t.Fatal("expected equal keys to keep relative order")
	}

	snapshot := append([]*tournament.Tournament(nil), batch...)
	Sort(batch)
	for i := range batch {
		if batch[i] != snapshot[i] {
			t.Errorf("sorting a sorted batch changed position %d", i)
		}
	}
}
