package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "prefs.json"

// Prefs are small UI preferences remembered between runs.
type Prefs struct {
	LastDeck string `json:"last_deck"`
}

// Store reads and writes Prefs under a directory.
type Store struct {
	Dir string
}

// DefaultStore keeps preferences in the user config dir.
func DefaultStore() (Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: filepath.Join(dir, "swipedeck")}, nil
}

func (s Store) path() string { return filepath.Join(s.Dir, prefsFile) }

// Save writes p atomically.
func (s Store) Save(p Prefs) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

// Load returns the stored preferences, or the zero value if none exist.
func (s Store) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, err
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}
