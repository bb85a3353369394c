package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"starsplit/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, path, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("no config file should exist at %s", path)
	}
	if cfg.Game.ProcessName != "SeaOfStars.exe" {
		t.Fatalf("process_name = %q", cfg.Game.ProcessName)
	}
	if cfg.Timer.Address != "localhost:16834" {
		t.Fatalf("timer address = %q", cfg.Timer.Address)
	}
	if cfg.Daemon.TickRate != 60 {
		t.Fatalf("tick_rate = %d", cfg.Daemon.TickRate)
	}
	if !filepath.IsAbs(cfg.Daemon.StateDir) {
		t.Fatalf("state_dir should be expanded, got %q", cfg.Daemon.StateDir)
	}
	prefs := cfg.Splits.Preferences()
	if !prefs.Mountain || !prefs.StopOnLoad {
		t.Fatalf("default toggles should all be enabled: %+v", prefs)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[game]
process_name = "SeaOfStars.x86_64"

[timer]
address = "127.0.0.1:16835"

[splits]
mob = false

[daemon]
tick_rate = 30

[logging]
level = "debug"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatalf("config at %s should exist", resolved)
	}
	if cfg.Game.ProcessName != "SeaOfStars.x86_64" {
		t.Fatalf("process_name = %q", cfg.Game.ProcessName)
	}
	if cfg.Timer.Address != "127.0.0.1:16835" {
		t.Fatalf("timer address = %q", cfg.Timer.Address)
	}
	if cfg.Splits.Mob {
		t.Fatal("mob toggle should be overridden off")
	}
	if !cfg.Splits.Town {
		t.Fatal("untouched toggles should keep defaults")
	}
	if cfg.Daemon.TickRate != 30 {
		t.Fatalf("tick_rate = %d", cfg.Daemon.TickRate)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadTimerAddress(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[timer]
address = "no-port"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("address without port should fail validation")
	}
}

func TestLoadRejectsExcessiveTickRate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[daemon]
tick_rate = 1000
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("tick rate above the ceiling should fail validation")
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
[logging]
format = "yaml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("unknown log format should fail validation")
	}
}

func TestExpandPathResolvesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expanded, err := config.ExpandPath("~/state")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if expanded != filepath.Join(home, "state") {
		t.Fatalf("expanded = %q", expanded)
	}

	if _, err := config.ExpandPath("  "); err == nil {
		t.Fatal("blank path should fail")
	}
}

func TestStatePaths(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(cfg.SettingsDBPath(), cfg.Daemon.StateDir) {
		t.Fatalf("settings db %q outside state dir", cfg.SettingsDBPath())
	}
	if filepath.Base(cfg.SocketPath()) != "starsplitd.sock" {
		t.Fatalf("socket path = %q", cfg.SocketPath())
	}
	if filepath.Base(cfg.LockPath()) != "starsplitd.lock" {
		t.Fatalf("lock path = %q", cfg.LockPath())
	}
}

func TestSampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, config.Sample())
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}
