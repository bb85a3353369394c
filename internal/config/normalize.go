package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeGame()
	c.normalizeTimer()
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeGame() {
	c.Game.ProcessName = strings.TrimSpace(c.Game.ProcessName)
	if c.Game.ProcessName == "" {
		c.Game.ProcessName = defaultProcessName
	}
	c.Game.ProfilePath = strings.TrimSpace(c.Game.ProfilePath)
}

func (c *Config) normalizeTimer() {
	c.Timer.Address = strings.TrimSpace(c.Timer.Address)
	if c.Timer.Address == "" {
		c.Timer.Address = defaultTimerAddress
	}
	if c.Timer.DialTimeout <= 0 {
		c.Timer.DialTimeout = defaultDialTimeout
	}
	if c.Timer.CommandTimeout <= 0 {
		c.Timer.CommandTimeout = defaultCommandTimeout
	}
}

func (c *Config) normalizeDaemon() error {
	var err error
	if strings.TrimSpace(c.Daemon.StateDir) == "" {
		c.Daemon.StateDir = defaultStateDir
	}
	if c.Daemon.StateDir, err = ExpandPath(c.Daemon.StateDir); err != nil {
		return fmt.Errorf("daemon.state_dir: %w", err)
	}
	if c.Game.ProfilePath != "" {
		if c.Game.ProfilePath, err = ExpandPath(c.Game.ProfilePath); err != nil {
			return fmt.Errorf("game.profile_path: %w", err)
		}
	}
	if c.Daemon.TickRate <= 0 {
		c.Daemon.TickRate = defaultTickRate
	}
	if c.Daemon.AttachInterval <= 0 {
		c.Daemon.AttachInterval = defaultAttachInterval
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ExpandPath resolves a leading ~ against the user's home directory and
// returns an absolute path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
