package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/padel-events/internal/logger"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

const (
	// StateFile holds the identity set.
	StateFile = "padel_state.json"
	// BatchFile holds the last filtered batch.
	BatchFile = "tournois_4padel.csv"
)

// Storage reads and writes the files of one data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// Dir returns the data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// StatePath returns the path of the identity set file.
func (s *Storage) StatePath() string {
	return filepath.Join(s.dataDir, StateFile)
}

// BatchPath returns the path of the CSV batch artifact.
func (s *Storage) BatchPath() string {
	return filepath.Join(s.dataDir, BatchFile)
}

// LoadIdentities returns the persisted identity set. A missing file yields an
// empty set; so does an unreadable or corrupt one, after a warning.
func (s *Storage) LoadIdentities() tournament.IdentitySet {
	path := s.StatePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("State file unreadable, starting from empty set", logger.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return tournament.NewIdentitySet()
	}

	var ids []tournament.Identity
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.Warn("State file corrupt, starting from empty set", logger.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return tournament.NewIdentitySet()
	}

	return tournament.NewIdentitySet(ids...)
}

// SaveIdentities replaces the state file with set, sorted.
func (s *Storage) SaveIdentities(set tournament.IdentitySet) error {
	ids := set.Sorted()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ids); err != nil {
		return fmt.Errorf("encoding identities: %w", err)
	}

	if err := writeFileAtomic(s.StatePath(), buf.Bytes()); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
