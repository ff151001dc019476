package config

import (
	"path/filepath"
	"testing"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	s := NewTOMLStore(path)

	snap := Snapshot{Pattern: "waves", Theme: "ocean", FPS: 30, MouseEnabled: true}
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2 := NewTOMLStore(path)
	got, err := s2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != snap {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, snap)
	}
}

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "state.toml")
	s := NewTOMLStore(path)
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file should not error, got %v", err)
	}
	if got != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", got)
	}
}

func TestSaveFavoriteAndGetFavorite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	s := NewTOMLStore(path)

	note := 3
	rec := FavoriteSlot{PatternName: "starfield", ThemeName: "mono", Preset: &note, SavedAt: "2026-01-01T00:00:00Z"}
	if err := s.SaveFavorite(5, rec); err != nil {
		t.Fatalf("SaveFavorite: %v", err)
	}

	got, ok := s.GetFavorite(5)
	if !ok {
		t.Fatalf("expected slot 5 to exist")
	}
	if got.PatternName != "starfield" || got.ThemeName != "mono" || *got.Preset != 3 {
		t.Fatalf("unexpected favorite record: %+v", got)
	}

	if _, ok := s.GetFavorite(99); ok {
		t.Fatalf("expected empty slot to report absent")
	}
}

func TestGetAllFavoritesSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	s := NewTOMLStore(path)
	s.SaveFavorite(1, FavoriteSlot{PatternName: "waves", ThemeName: "dawn"})
	s.SaveFavorite(2, FavoriteSlot{PatternName: "embers", ThemeName: "fire"})

	s2 := NewTOMLStore(path)
	if _, err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	all := s2.GetAllFavorites()
	if len(all) != 2 {
		t.Fatalf("expected 2 favorites after reload, got %d", len(all))
	}
	if all[1].PatternName != "waves" || all[2].PatternName != "embers" {
		t.Fatalf("unexpected favorites map: %+v", all)
	}
}
