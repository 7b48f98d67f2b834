package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Server.Port != 7788 {
		t.Fatalf("expected default port, got %d", s.Server.Port)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file created, got %v", err)
	}
}

func TestLoadBackfillsOlderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"metadata":{"tmdbApiKey":"abc"}}`), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	s, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Metadata.TMDBAPIKey != "abc" {
		t.Fatalf("existing value lost: %q", s.Metadata.TMDBAPIKey)
	}
	if s.Metadata.Language != "en-US" {
		t.Fatalf("language not backfilled: %q", s.Metadata.Language)
	}
	if s.Player.BaseURL != "https://vidlink.pro" {
		t.Fatalf("player base not backfilled: %q", s.Player.BaseURL)
	}
	if s.Log.MaxSize != 50 {
		t.Fatalf("log maxSize not backfilled: %d", s.Log.MaxSize)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s := DefaultSettings()
	s.Metadata.TMDBAPIKey = "secret"
	s.Server.Port = 9000

	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Metadata.TMDBAPIKey != "secret" || loaded.Server.Port != 9000 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
