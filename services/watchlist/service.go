// Package watchlist persists the user's saved titles as a JSON document.
package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"moviemonk/models"
)

var (
	ErrStorageDirRequired = errors.New("storage directory not provided")
	ErrKindRequired       = errors.New("media kind is required")
	ErrIDRequired         = errors.New("id is required")
)

// Service manages persistence and retrieval of watchlist entries. Entries
// are keyed by (kind, id) and kept in insertion order.
type Service struct {
	mu      sync.RWMutex
	fs      afero.Fs
	path    string
	entries []models.WatchlistEntry
	index   map[string]int
	now     func() time.Time
}

// NewService creates a watchlist service storing data inside the provided
// directory of fs.
func NewService(fs afero.Fs, storageDir string) (*Service, error) {
	if strings.TrimSpace(storageDir) == "" {
		return nil, ErrStorageDirRequired
	}

	if err := fs.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create watchlist dir: %w", err)
	}

	svc := &Service{
		fs:    fs,
		path:  filepath.Join(storageDir, "watchlist.json"),
		index: make(map[string]int),
		now:   time.Now,
	}

	if err := svc.load(); err != nil {
		return nil, err
	}

	return svc, nil
}

// All returns every entry in the order it was added.
func (s *Service) All() []models.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Contains reports whether the title identified by (kind, id) is saved.
func (s *Service) Contains(kind models.MediaKind, id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item := models.CatalogItem{Kind: kind, ID: id}
	_, ok := s.index[item.Key()]
	return ok
}

// Add saves a title. Adding an already-saved title is a no-op and returns
// the stored entry unchanged, original AddedAt included.
func (s *Service) Add(item models.CatalogItem) (models.WatchlistEntry, error) {
	if !item.Kind.Valid() {
		return models.WatchlistEntry{}, ErrKindRequired
	}
	if item.ID == 0 {
		return models.WatchlistEntry{}, ErrIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.index[item.Key()]; ok {
		return s.entries[pos], nil
	}

	entry := models.WatchlistEntry{
		CatalogItem: item,
		AddedAt:     s.now().UTC(),
	}

	s.entries = append(s.entries, entry)
	s.index[item.Key()] = len(s.entries) - 1

	if err := s.saveLocked(); err != nil {
		// Roll back so memory matches disk.
		s.entries = s.entries[:len(s.entries)-1]
		delete(s.index, item.Key())
		return models.WatchlistEntry{}, err
	}

	return entry, nil
}

// Remove deletes an entry, reporting whether it was present.
func (s *Service) Remove(kind models.MediaKind, id int64) (bool, error) {
	if !kind.Valid() {
		return false, ErrKindRequired
	}
	if id == 0 {
		return false, ErrIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.CatalogItem{Kind: kind, ID: id}.Key()
	pos, ok := s.index[key]
	if !ok {
		return false, nil
	}

	removed := s.entries[pos]
	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	s.reindexLocked()

	if err := s.saveLocked(); err != nil {
		s.entries = append(s.entries[:pos], append([]models.WatchlistEntry{removed}, s.entries[pos:]...)...)
		s.reindexLocked()
		return false, err
	}

	return true, nil
}

// Clear removes every entry.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevEntries, prevIndex := s.entries, s.index
	s.entries = nil
	s.index = make(map[string]int)

	if err := s.saveLocked(); err != nil {
		s.entries, s.index = prevEntries, prevIndex
		return err
	}

	return nil
}

func (s *Service) reindexLocked() {
	s.index = make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		s.index[e.Key()] = i
	}
}

func (s *Service) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read watchlist: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []models.WatchlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode watchlist: %w", err)
	}

	s.entries = make([]models.WatchlistEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Kind.Valid() || e.ID == 0 {
			continue
		}
		if _, dup := s.index[e.Key()]; dup {
			continue
		}
		if e.AddedAt.IsZero() {
			e.AddedAt = s.now().UTC()
		}
		s.entries = append(s.entries, e)
		s.index[e.Key()] = len(s.entries) - 1
	}

	return nil
}

func (s *Service) saveLocked() error {
	entries := s.entries
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write watchlist temp file: %w", err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace watchlist file: %w", err)
	}

	return nil
}
