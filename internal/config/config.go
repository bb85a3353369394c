package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"starsplit/internal/splits"
)

//go:embed sample_config.toml
var sampleConfig string

// Game identifies the process to attach to and the pointer profile used to
// read it.
type Game struct {
	ProcessName string `toml:"process_name"`
	ProfilePath string `toml:"profile_path"`
}

// Timer holds the LiveSplit Server connection settings.
type Timer struct {
	Address        string `toml:"address"`
	DialTimeout    int    `toml:"dial_timeout"`
	CommandTimeout int    `toml:"command_timeout"`
}

// Splits carries the default split toggles. They seed the settings store
// on first run; after that the store owns the live values.
type Splits struct {
	Mountain   bool `toml:"mountain"`
	Town       bool `toml:"town"`
	Mob        bool `toml:"mob"`
	LevelUp    bool `toml:"level_up"`
	Dungeon    bool `toml:"dungeon"`
	StopOnLoad bool `toml:"stop_on_load"`
}

// Daemon holds polling cadence and state directory settings.
type Daemon struct {
	TickRate       int    `toml:"tick_rate"`
	AttachInterval int    `toml:"attach_interval"`
	StateDir       string `toml:"state_dir"`
}

// Logging holds log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for starsplit.
type Config struct {
	Game    Game    `toml:"game"`
	Timer   Timer   `toml:"timer"`
	Splits  Splits  `toml:"splits"`
	Daemon  Daemon  `toml:"daemon"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/starsplit/config.toml")
}

// Load locates, parses, and validates a configuration file. An absent file
// yields the defaults. The returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, !info.IsDir(), nil
}

// Sample returns the annotated sample configuration shipped with the
// binary.
func Sample() string {
	return sampleConfig
}

// Preferences converts the configured defaults into core preferences.
func (s Splits) Preferences() splits.Preferences {
	return splits.Preferences{
		Mountain:   s.Mountain,
		Town:       s.Town,
		Mob:        s.Mob,
		LevelUp:    s.LevelUp,
		Dungeon:    s.Dungeon,
		StopOnLoad: s.StopOnLoad,
	}
}

// EnsureDirectories creates the state directory tree.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Daemon.StateDir, 0o755); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}
	return nil
}

// SettingsDBPath returns the path of the settings database.
func (c *Config) SettingsDBPath() string {
	return filepath.Join(c.Daemon.StateDir, "settings.db")
}

// SocketPath returns the path of the daemon control socket.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Daemon.StateDir, "starsplitd.sock")
}

// LockPath returns the path of the daemon single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Daemon.StateDir, "starsplitd.lock")
}

// LogPath returns the path of the daemon log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Daemon.StateDir, "starsplit.log")
}
