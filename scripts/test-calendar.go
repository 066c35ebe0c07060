package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/padel-events/internal/calendar"
	"github.com/pfrederiksen/padel-events/internal/scraper"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

func main() {
	// Create a sample tournament
	t := tournament.New("P250", "Padel Club Lyon", "Open du Rhône", "15/03/2027", "19:00", "Mixte")

	icsContent := calendar.GenerateICS([]*tournament.Tournament{t}, time.Now(), scraper.TournamentsURL)

	// Write to file (owner read/write only for security)
	filename := "test-padel-tournament.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
