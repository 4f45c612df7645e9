package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/treenotes/internal/api"
)

// DefaultDebounce matches the write coalescing window of the note session.
const DefaultDebounce = 750 * time.Millisecond

// Config holds client configuration stored at ~/.treenotes/config.
type Config struct {
	ServerURL  string `yaml:"server_url"`
	FeedURL    string `yaml:"feed_url,omitempty"`
	Username   string `yaml:"username,omitempty"`
	DebounceMS int    `yaml:"debounce_ms,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
	LogFile    string `yaml:"log_file,omitempty"`
}

// Default returns the configuration used before the first login.
func Default() *Config {
	return &Config{
		ServerURL:  api.DefaultBaseURL,
		FeedURL:    api.DefaultFeedURL,
		DebounceMS: int(DefaultDebounce / time.Millisecond),
		LogLevel:   "info",
	}
}

// Dir returns the config directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".treenotes")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, fmt.Errorf("config missing server_url")
	}
	if cfg.DebounceMS < 0 {
		return nil, fmt.Errorf("config debounce_ms must not be negative, got %d", cfg.DebounceMS)
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// DebounceWindow is the configured coalescing window.
func (c *Config) DebounceWindow() time.Duration {
	if c == nil || c.DebounceMS <= 0 {
		return DefaultDebounce
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Feed returns the tree feed url, derived from the server url when unset.
func (c *Config) Feed() string {
	if c == nil {
		return api.DefaultFeedURL
	}
	if c.FeedURL != "" {
		return c.FeedURL
	}
	base := strings.TrimRight(c.ServerURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + "/ws"
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + "/ws"
	}
	return api.DefaultFeedURL
}

// LogPath is where interactive sessions write their log.
func (c *Config) LogPath() string {
	if c != nil && c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(Dir(), "treenotes.log")
}
