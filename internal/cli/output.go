package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfrederiksen/padel-events/internal/notifier"
	"github.com/pfrederiksen/padel-events/internal/tournament"
	"github.com/pfrederiksen/padel-events/internal/watcher"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

var (
	colorNew   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorLevel = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
)

// styles are bound to one writer so that colors are dropped when the writer
// is not a terminal.
type styles struct {
	new   lipgloss.Style
	level lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		new:   r.NewStyle().Foreground(colorNew).Bold(true),
		level: r.NewStyle().Foreground(colorLevel).Bold(true),
		dim:   r.NewStyle().Foreground(colorDim),
	}
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time                `json:"checked_at"`
	RunID     string                   `json:"run_id"`
	DryRun    bool                     `json:"dry_run,omitempty"`
	Scraped   int                      `json:"scraped"`
	New       []*tournament.Tournament `json:"new"`
	NewCount  int                      `json:"new_count"`
}

// NewOutputResult converts an engine result.
func NewOutputResult(result *watcher.Result, dryRun bool) *OutputResult {
	fresh := result.New
	if fresh == nil {
		fresh = []*tournament.Tournament{}
	}
	return &OutputResult{
		CheckedAt: time.Now().UTC(),
		RunID:     result.RunID,
		DryRun:    dryRun,
		Scraped:   result.Scraped,
		New:       fresh,
		NewCount:  result.Count,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	st := newStyles(w)

	if result.NewCount == 0 {
		fmt.Fprintf(w, "No new tournaments found (%d scraped).\n", result.Scraped)
		return nil
	}

	for _, t := range result.New {
		fmt.Fprintf(w, "%s %s\n", st.new.Render("NEW:"), formatTournament(st, t))
		if verbose {
			writeDetails(w, st, t)
		}
	}

	suffix := ""
	if result.DryRun {
		suffix = " (dry run)"
	}
	fmt.Fprintf(w, "\nTotal: %d new of %d scraped%s\n", result.NewCount, result.Scraped, suffix)
	return nil
}

func formatTournament(st styles, t *tournament.Tournament) string {
	line := notifier.FormatLine(t)
	if t.Level == "" {
		return line
	}
	return st.level.Render(t.Level) + line[len(t.Level):]
}

func writeDetails(w io.Writer, st styles, t *tournament.Tournament) {
	fmt.Fprintln(w, st.dim.Render("     ID: "+t.Identity().ID()))
	if t.Category != "" {
		fmt.Fprintln(w, st.dim.Render("     Category: "+t.Category))
	}
}

// WriteTournaments writes a plain listing, used by the list command.
func WriteTournaments(w io.Writer, tournaments []*tournament.Tournament, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		if tournaments == nil {
			tournaments = []*tournament.Tournament{}
		}
		return writeJSON(w, tournaments)
	}

	st := newStyles(w)
	if len(tournaments) == 0 {
		fmt.Fprintln(w, "No tournaments found.")
		return nil
	}
	for _, t := range tournaments {
		fmt.Fprintln(w, formatTournament(st, t))
		if verbose {
			writeDetails(w, st, t)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d tournaments\n", len(tournaments))
	return nil
}
