package scraper

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		card         CardFragments
		wantLevel    string
		wantClub     string
		wantName     string
		wantDate     string
		wantTime     string
		wantCategory string
	}{
		{
			name: "complete card",
			card: CardFragments{
				Level:     []string{"P250"},
				Club:      []string{"4PADEL Nation"},
				DateBlock: []string{"P250 Matinale", "Le 14/02/2026 à 9h30", "Ouvert à tous"},
			},
			wantLevel:    "P250",
			wantClub:     "4PADEL Nation",
			wantName:     "P250 Matinale",
			wantDate:     "14/02/2026",
			wantTime:     "9:30",
			wantCategory: "Ouvert à tous",
		},
		{
			name: "blank lines before level and club",
			card: CardFragments{
				Level:     []string{"", "  ", "P100"},
				Club:      []string{" ", "4PADEL Bordeaux"},
				DateBlock: []string{"Soirée P100", "Le 03/03/2026 à 19h00", "Hommes"},
			},
			wantLevel:    "P100",
			wantClub:     "4PADEL Bordeaux",
			wantName:     "Soirée P100",
			wantDate:     "03/03/2026",
			wantTime:     "19:00",
			wantCategory: "Hommes",
		},
		{
			name: "empty date block",
			card: CardFragments{
				Level: []string{"P100"},
				Club:  []string{"4PADEL Lyon"},
			},
			wantLevel: "P100",
			wantClub:  "4PADEL Lyon",
		},
		{
			name: "single datetime line is both name and datetime",
			card: CardFragments{
				Level:     []string{"P100"},
				Club:      []string{"4PADEL Lyon"},
				DateBlock: []string{"Le 01/04/2026 à 18h00"},
			},
			wantLevel: "P100",
			wantClub:  "4PADEL Lyon",
			wantName:  "Le 01/04/2026 à 18h00",
			wantDate:  "01/04/2026",
			wantTime:  "18:00",
		},
		{
			name: "reordered lines",
			card: CardFragments{
				Level:     []string{"P250"},
				Club:      []string{"4PADEL Marseille"},
				DateBlock: []string{"Mixte", "Le 10/05/2026 à 10h15", "P250 Printemps"},
			},
			wantLevel:    "P250",
			wantClub:     "4PADEL Marseille",
			wantName:     "Mixte",
			wantDate:     "10/05/2026",
			wantTime:     "10:15",
			wantCategory: "P250 Printemps",
		},
		{
			name: "category skips lines equal to name",
			card: CardFragments{
				Level:     []string{"P100"},
				DateBlock: []string{"Open", "Dames", "Le 02/02/2026 à 20h00", "Open"},
			},
			wantLevel:    "P100",
			wantName:     "Open",
			wantDate:     "02/02/2026",
			wantTime:     "20:00",
			wantCategory: "Dames",
		},
		{
			name: "no datetime phrase",
			card: CardFragments{
				Level:     []string{"P100"},
				Club:      []string{"4PADEL Lille"},
				DateBlock: []string{"Tournoi", "Date à venir"},
			},
			wantLevel:    "P100",
			wantClub:     "4PADEL Lille",
			wantName:     "Tournoi",
			wantCategory: "Date à venir",
		},
		{
			name: "empty card",
			card: CardFragments{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.card)
			if got == nil {
				t.Fatal("Extract() returned nil")
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", got.Level, tt.wantLevel)
			}
			if got.Club != tt.wantClub {
				t.Errorf("Club = %q, want %q", got.Club, tt.wantClub)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", got.Date, tt.wantDate)
			}
			if got.Time != tt.wantTime {
				t.Errorf("Time = %q, want %q", got.Time, tt.wantTime)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestExtract_Descriptor(t *testing.T) {
	got := Extract(CardFragments{
		Level:     []string{"P250"},
		Club:      []string{"4PADEL Nation"},
		DateBlock: []string{"P250 Matinale", "Le 14/02/2026 à 9h30", "Ouvert à tous"},
	})

	want := "P250 Matinale | Ouvert à tous"
	if got.Descriptor != want {
		t.Errorf("Descriptor = %q, want %q", got.Descriptor, want)
	}
}
