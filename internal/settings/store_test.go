package settings_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"starsplit/internal/settings"
	"starsplit/internal/splits"
)

func allEnabled() splits.Preferences {
	return splits.Preferences{
		Mountain:   true,
		Town:       true,
		Mob:        true,
		LevelUp:    true,
		Dungeon:    true,
		StopOnLoad: true,
	}
}

func openStore(t *testing.T, path string) *settings.Store {
	t.Helper()
	store, err := settings.Open(path, allEnabled())
	if err != nil {
		t.Fatalf("settings.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestOpenSeedsDefaults(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "settings.db"))

	prefs, err := store.Preferences(context.Background())
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs != allEnabled() {
		t.Fatalf("prefs = %+v, want all enabled", prefs)
	}
}

func TestTogglesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	store := openStore(t, path)
	if err := store.SetSplit(ctx, splits.Mob, false); err != nil {
		t.Fatalf("SetSplit: %v", err)
	}
	if err := store.SetStopOnLoad(ctx, false); err != nil {
		t.Fatalf("SetStopOnLoad: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening must not re-seed over the stored toggles.
	store = openStore(t, path)
	prefs, err := store.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs.Mob {
		t.Fatal("mob toggle should stay disabled across reopen")
	}
	if prefs.StopOnLoad {
		t.Fatal("stop-on-load should stay disabled across reopen")
	}
	if !prefs.Mountain || !prefs.Town || !prefs.LevelUp || !prefs.Dungeon {
		t.Fatalf("untouched toggles changed: %+v", prefs)
	}
}

func TestBossSplitCannotBeDisabled(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "settings.db"))
	if err := store.SetSplit(context.Background(), splits.Boss, false); err == nil {
		t.Fatal("disabling the boss split should fail")
	}
}

func TestUnknownCategoryRejected(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "settings.db"))
	if err := store.SetSplit(context.Background(), splits.Category("volcano"), true); err == nil {
		t.Fatal("unknown category should fail")
	}
}

func TestSchemaVersionGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store := openStore(t, path)
	store.Close()

	// Rewrite the recorded version the way a future release would.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update schema version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	_, err = settings.Open(path, allEnabled())
	if !errors.Is(err, settings.ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}
