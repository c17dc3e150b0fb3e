// Package config handles the XDG configuration directory, its files and the
// optional config.toml settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"todo/internal/storage"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultAddr is the listen address of the web surface.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultDeleteDelay is how long a deleted row lingers in the terminal UI.
	DefaultDeleteDelay = 300 * time.Millisecond

	// DefaultGoogleList is the Google Tasks list title used by push.
	DefaultGoogleList = "todo"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are read from config.toml, with defaults for anything unset.
	Settings Settings
}

// Settings mirrors config.toml.
type Settings struct {
	Store  StoreSettings  `toml:"store"`
	Log    LogSettings    `toml:"log"`
	Web    WebSettings    `toml:"web"`
	UI     UISettings     `toml:"ui"`
	Google GoogleSettings `toml:"google"`
}

// StoreSettings selects the key-value backend.
type StoreSettings struct {
	Backend string `toml:"backend"` // file|sqlite|mysql
	Path    string `toml:"path"`
	DSN     string `toml:"dsn"`
	Key     string `toml:"key"`
}

// LogSettings configures the diagnostic logger.
type LogSettings struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json|logfmt
}

// WebSettings configures the web surface.
type WebSettings struct {
	Addr string `toml:"addr"`
}

// UISettings configures the terminal UI.
type UISettings struct {
	DeleteDelay string `toml:"delete_delay"`
}

// GoogleSettings configures push.
type GoogleSettings struct {
	List string `toml:"list"`
}

// New creates a new Config with the default or specified config directory
// and loads config.toml from it if present.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Settings: DefaultSettings()}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() Settings {
	return Settings{
		Store:  StoreSettings{Backend: storage.BackendFile, Key: storage.DefaultKey},
		Log:    LogSettings{Level: "info", Format: "text"},
		Web:    WebSettings{Addr: DefaultAddr},
		UI:     UISettings{DeleteDelay: DefaultDeleteDelay.String()},
		Google: GoogleSettings{List: DefaultGoogleList},
	}
}

func (c *Config) load() error {
	_, err := toml.DecodeFile(c.SettingsPath(), &c.Settings)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if _, err := time.ParseDuration(c.Settings.UI.DeleteDelay); err != nil {
		return fmt.Errorf("invalid %s: ui.delete_delay: %w", SettingsFile, err)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StoreOptions returns the storage options, filling in the default path for
// file and sqlite backends.
func (c *Config) StoreOptions() storage.Options {
	s := c.Settings.Store
	opts := storage.Options{Backend: s.Backend, Path: s.Path, DSN: s.DSN}
	if opts.Path == "" {
		switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
		case storage.BackendSQLite:
			opts.Path = filepath.Join(c.Dir, "todo.db")
		default:
			opts.Path = filepath.Join(c.Dir, "todo.json")
		}
	}
	return opts
}

// StoreKey returns the key the task list is stored under.
func (c *Config) StoreKey() string {
	if c.Settings.Store.Key == "" {
		return storage.DefaultKey
	}
	return c.Settings.Store.Key
}

// DeleteDelay returns the terminal UI removal delay.
func (c *Config) DeleteDelay() time.Duration {
	d, err := time.ParseDuration(c.Settings.UI.DeleteDelay)
	if err != nil {
		return DefaultDeleteDelay
	}
	return d
}

// WebAddr returns the web surface listen address.
func (c *Config) WebAddr() string {
	if c.Settings.Web.Addr == "" {
		return DefaultAddr
	}
	return c.Settings.Web.Addr
}

// GoogleList returns the Google Tasks list title used by push.
func (c *Config) GoogleList() string {
	if c.Settings.Google.List == "" {
		return DefaultGoogleList
	}
	return c.Settings.Google.List
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
