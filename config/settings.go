package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Metadata MetadataSettings `json:"metadata"`
	Storage  StorageSettings  `json:"storage"`
	Cache    CacheSettings    `json:"cache"`
	Player   PlayerSettings   `json:"player"`
	Log      LogConfig        `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type MetadataSettings struct {
	TMDBAPIKey string `json:"tmdbApiKey"`
	Language   string `json:"language"`
}

// StorageSettings locates the JSON documents the stores persist.
type StorageSettings struct {
	Directory string `json:"directory"`
}

type CacheSettings struct {
	Directory string `json:"directory"`
}

// PlayerSettings configures the external embed player.
type PlayerSettings struct {
	BaseURL string `json:"baseUrl"`
}

type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server:   ServerSettings{Host: "0.0.0.0", Port: 7788},
		Metadata: MetadataSettings{TMDBAPIKey: "", Language: "en-US"},
		Storage:  StorageSettings{Directory: "data"},
		Cache:    CacheSettings{Directory: "cache"},
		Player:   PlayerSettings{BaseURL: "https://vidlink.pro"},
		Log: LogConfig{
			File:       "cache/logs/backend.log",
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings.json from disk or creates defaults if missing.
// Fields a pre-existing config predates are backfilled with defaults.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}

	if strings.TrimSpace(s.Server.Host) == "" {
		s.Server.Host = "0.0.0.0"
	}
	if s.Server.Port == 0 {
		s.Server.Port = 7788
	}
	if strings.TrimSpace(s.Metadata.Language) == "" {
		s.Metadata.Language = "en-US"
	}
	if strings.TrimSpace(s.Storage.Directory) == "" {
		s.Storage.Directory = "data"
	}
	if strings.TrimSpace(s.Cache.Directory) == "" {
		s.Cache.Directory = "cache"
	}
	if strings.TrimSpace(s.Player.BaseURL) == "" {
		s.Player.BaseURL = "https://vidlink.pro"
	}
	if strings.TrimSpace(s.Log.File) == "" {
		s.Log.File = "cache/logs/backend.log"
	}
	if s.Log.MaxSize == 0 {
		s.Log.MaxSize = 50
	}
	if s.Log.MaxBackups == 0 {
		s.Log.MaxBackups = 3
	}
	if s.Log.MaxAge == 0 {
		s.Log.MaxAge = 7
	}

	return s, nil
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
