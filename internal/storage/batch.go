package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// BatchHeader is the column order of the batch artifact.
var BatchHeader = []string{"niveau", "club", "nom", "date", "heure", "format_ouverture", "caracteristiques"}

// SaveBatch writes tournaments to the batch artifact. An empty batch writes
// nothing and returns ErrEmptyBatch.
func (s *Storage) SaveBatch(tournaments []*tournament.Tournament) error {
	if len(tournaments) == 0 {
		return ErrEmptyBatch
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tournaments); err != nil {
		return err
	}

	if err := writeFileAtomic(s.BatchPath(), buf.Bytes()); err != nil {
		return fmt.Errorf("writing batch: %w", err)
	}
	return nil
}

// WriteCSV writes tournaments with a header row.
func WriteCSV(w io.Writer, tournaments []*tournament.Tournament) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BatchHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, t := range tournaments {
		row := []string{t.Level, t.Club, t.Name, t.Date, t.Time, t.Category, t.Descriptor}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadBatch reads the batch artifact written by SaveBatch. Columns are
// matched by header name; missing columns read as empty.
func (s *Storage) LoadBatch() ([]*tournament.Tournament, error) {
	f, err := os.Open(s.BatchPath())
	if err != nil {
		return nil, fmt.Errorf("opening batch: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses a batch artifact.
func ReadCSV(r io.Reader) ([]*tournament.Tournament, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var tournaments []*tournament.Tournament
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		t := tournament.New(
			field(row, "niveau"),
			field(row, "club"),
			field(row, "nom"),
			field(row, "date"),
			field(row, "heure"),
			field(row, "format_ouverture"),
		)
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}
