package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lixenwraith/glyphstorm/toml"
)

// document is the on-disk shape: one TOML file holding both the
// settings snapshot and every favorite slot, keyed by slot number.
type document struct {
	Config    Snapshot
	Favorites map[int]FavoriteSlot
}

// TOMLStore is the default Collaborator, backed by a single TOML file
// guarded by an in-process mutex (the engine's single event loop is its
// only expected caller, but favorite saves can be triggered from a
// command handler invoked off a timer goroutine in principle, so the
// mutex costs nothing and removes that assumption).
type TOMLStore struct {
	path string

	mu  sync.Mutex
	doc document
}

// NewTOMLStore opens (without yet loading) a store rooted at path. Call
// Load to populate it from disk; a missing file is not an error — the
// store starts empty and the first Save creates it.
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path, doc: document{Favorites: make(map[int]FavoriteSlot)}}
}

// DefaultPath returns $XDG_CONFIG_HOME/glyphstorm/state.toml, falling
// back to ~/.config/glyphstorm/state.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glyphstorm", "state.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "glyphstorm", "state.toml"), nil
}

// Load reads the backing file into memory. A nonexistent file leaves the
// store at its zero state rather than failing — a first run has nothing
// to load yet.
func (s *TOMLStore) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.doc.Config, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("config: read %s: %w", s.path, err)
	}

	var doc document
	doc.Favorites = make(map[int]FavoriteSlot)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("config: parse %s: %w", s.path, err)
	}
	s.doc = doc
	return s.doc.Config, nil
}

// Save writes snap plus the current in-memory favorites back to disk
// atomically: encode to a temp file in the same directory, then rename
// over the target so a crash mid-write never leaves a truncated file.
func (s *TOMLStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Config = snap
	return s.writeLocked()
}

func (s *TOMLStore) writeLocked() error {
	data, err := toml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.toml")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("config: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("config: replace %s: %w", s.path, err)
	}
	return nil
}

// GetFavorite returns the slot's record, if any.
func (s *TOMLStore) GetFavorite(slot int) (FavoriteSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.doc.Favorites[slot]
	return rec, ok
}

// SaveFavorite writes rec to slot and persists the whole store.
func (s *TOMLStore) SaveFavorite(slot int, rec FavoriteSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Favorites == nil {
		s.doc.Favorites = make(map[int]FavoriteSlot)
	}
	s.doc.Favorites[slot] = rec
	return s.writeLocked()
}

// GetAllFavorites returns a copy of every saved slot, keyed by slot
// number.
func (s *TOMLStore) GetAllFavorites() map[int]FavoriteSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]FavoriteSlot, len(s.doc.Favorites))
	for k, v := range s.doc.Favorites {
		out[k] = v
	}
	return out
}
