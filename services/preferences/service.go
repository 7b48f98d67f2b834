// Package preferences persists display preferences (theme and font).
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"moviemonk/models"
)

var (
	ErrStorageDirRequired = errors.New("storage directory not provided")
	ErrUnknownTheme       = errors.New("unknown theme")
	ErrUnknownFont        = errors.New("unknown font")
)

// Service stores the preferences document. Unknown or missing values fall
// back to defaults on load so a stale file from an older build never breaks
// startup.
type Service struct {
	mu    sync.RWMutex
	fs    afero.Fs
	path  string
	prefs models.Preferences
}

func NewService(fs afero.Fs, storageDir string) (*Service, error) {
	if strings.TrimSpace(storageDir) == "" {
		return nil, ErrStorageDirRequired
	}

	if err := fs.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}

	svc := &Service{
		fs:    fs,
		path:  filepath.Join(storageDir, "preferences.json"),
		prefs: models.DefaultPreferences(),
	}

	if err := svc.load(); err != nil {
		return nil, err
	}

	return svc, nil
}

// Get returns the current preferences.
func (s *Service) Get() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetTheme validates and persists a theme choice.
func (s *Service) SetTheme(theme models.Theme) (models.Preferences, error) {
	if !theme.Valid() {
		return models.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.prefs.Theme
	s.prefs.Theme = theme
	if err := s.saveLocked(); err != nil {
		s.prefs.Theme = prev
		return models.Preferences{}, err
	}
	return s.prefs, nil
}

// SetFont validates and persists a font choice.
func (s *Service) SetFont(font models.Font) (models.Preferences, error) {
	if !font.Valid() {
		return models.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownFont, font)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.prefs.Font
	s.prefs.Font = font
	if err := s.saveLocked(); err != nil {
		s.prefs.Font = prev
		return models.Preferences{}, err
	}
	return s.prefs, nil
}

// Reset restores the defaults.
func (s *Service) Reset() (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.prefs
	s.prefs = models.DefaultPreferences()
	if err := s.saveLocked(); err != nil {
		s.prefs = prev
		return models.Preferences{}, err
	}
	return s.prefs, nil
}

func (s *Service) load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var stored models.Preferences
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("[preferences] malformed preferences file, using defaults: %v", err)
		return nil
	}

	if stored.Theme.Valid() {
		s.prefs.Theme = stored.Theme
	} else if stored.Theme != "" {
		log.Printf("[preferences] unknown theme %q, keeping default", stored.Theme)
	}
	if stored.Font.Valid() {
		s.prefs.Font = stored.Font
	} else if stored.Font != "" {
		log.Printf("[preferences] unknown font %q, keeping default", stored.Font)
	}

	return nil
}

func (s *Service) saveLocked() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences temp file: %w", err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace preferences file: %w", err)
	}

	return nil
}
