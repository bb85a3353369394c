package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"

	"starsplit/internal/telemetry"
)

func TestDefaultProfileIsComplete(t *testing.T) {
	p, err := telemetry.DefaultProfile()
	if err != nil {
		t.Fatalf("DefaultProfile: %v", err)
	}
	if p.Module == "" {
		t.Fatal("built-in profile must name a module")
	}
	if p.ProgressionManager == 0 || p.LevelManager == 0 || p.CharacterStatsManager == 0 || p.CombatManager == 0 {
		t.Fatal("built-in profile must resolve every manager singleton")
	}
}

func TestLoadProfileFallsBackWithoutFile(t *testing.T) {
	builtin, err := telemetry.DefaultProfile()
	if err != nil {
		t.Fatalf("DefaultProfile: %v", err)
	}

	p, err := telemetry.LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile(\"\"): %v", err)
	}
	if p != builtin {
		t.Fatal("empty path should yield the built-in profile")
	}

	p, err = telemetry.LoadProfile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadProfile(missing): %v", err)
	}
	if p != builtin {
		t.Fatal("a missing file should yield the built-in profile")
	}
}

func TestLoadProfileOverridesBuiltinFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	override := "play_time_offset = 0x99\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	p, err := telemetry.LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.PlayTimeOffset != 0x99 {
		t.Fatalf("PlayTimeOffset = %#x, want 0x99", p.PlayTimeOffset)
	}

	builtin, _ := telemetry.DefaultProfile()
	if p.Module != builtin.Module {
		t.Fatal("fields absent from the file should keep built-in values")
	}
}

func TestLoadProfileRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte("play_time_offset = {"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if _, err := telemetry.LoadProfile(path); err == nil {
		t.Fatal("malformed profile should fail to load")
	}
}

func TestLoadProfileRejectsClearedModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte("module = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if _, err := telemetry.LoadProfile(path); err == nil {
		t.Fatal("a profile clearing the module name should fail validation")
	}
}
