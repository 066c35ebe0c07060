package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// FormatTournament formats a single tournament as an HTML Telegram message.
// Lines for empty fields are omitted.
func FormatTournament(t *tournament.Tournament, pageURL string) string {
	var msg strings.Builder

	msg.WriteString("🎾 <b>Nouveau tournoi 4PADEL</b>\n\n")

	msg.WriteString(fmt.Sprintf("🏆 <b>%s</b>", html.EscapeString(t.Level)))
	if t.Name != "" {
		msg.WriteString(" - " + html.EscapeString(t.Name))
	}
	msg.WriteString("\n")

	if t.Club != "" {
		msg.WriteString(fmt.Sprintf("📍 %s\n", html.EscapeString(t.Club)))
	}

	if t.Date != "" {
		when := t.Date
		if t.Time != "" {
			when += " à " + t.Time
		}
		msg.WriteString(fmt.Sprintf("📅 %s\n", html.EscapeString(when)))
	}

	if t.Category != "" {
		msg.WriteString(fmt.Sprintf("ℹ️ <i>%s</i>\n", html.EscapeString(t.Category)))
	}

	if pageURL != "" {
		msg.WriteString(fmt.Sprintf("\n🔗 <a href=\"%s\">Voir les tournois</a>\n", html.EscapeString(pageURL)))
	}

	level := strings.ReplaceAll(t.Level, " ", "")
	msg.WriteString("\n#4PADEL #Padel")
	if level != "" {
		msg.WriteString(" #" + level)
	}

	return msg.String()
}
