package tournament

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		tourName       string
		category       string
		wantDescriptor string
	}{
		{"both parts", "P100 Soirée", "Ouvert à tous", "P100 Soirée | Ouvert à tous"},
		{"name only", "P100 Soirée", "", "P100 Soirée"},
		{"category only", "", "Ouvert à tous", "Ouvert à tous"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New("P100", "4PADEL Marville", tt.tourName, "09/01/2026", "17:00", tt.category)
			if got.Descriptor != tt.wantDescriptor {
				t.Errorf("Descriptor = %q, want %q", got.Descriptor, tt.wantDescriptor)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	a := New("P100", "4PADEL Marville", "P100 Soirée", "09/01/2026", "17:00", "Ouvert à tous")
	b := New("p100", "4PADEL Marville", "P100 Soirée", "09/01/2026", "17:00", "Complet")

	if a.Identity() != b.Identity() {
		t.Error("level and category must not take part in identity")
	}

	c := New("P100", "4PADEL Marville", "P100 Soirée", "09/01/2026", "18:00", "")
	if a.Identity() == c.Identity() {
		t.Error("different time must yield different identity")
	}

	if len(a.Identity().ID()) != 40 {
		t.Errorf("expected 40 hex characters, got %d", len(a.Identity().ID()))
	}
	if a.Identity().ID() != b.Identity().ID() {
		t.Error("ID should be deterministic for equal identities")
	}
}

func TestIdentityLess(t *testing.T) {
	a := Identity{Club: "A", Date: "01/01/2026", Time: "9:00", Name: "x"}
	b := Identity{Club: "A", Date: "01/01/2026", Time: "9:00", Name: "y"}
	c := Identity{Club: "B"}

	if !a.Less(b) || b.Less(a) {
		t.Error("expected name to break ties")
	}
	if !b.Less(c) {
		t.Error("expected club to dominate")
	}
	if a.Less(a) {
		t.Error("Less must be irreflexive")
	}
}
