package settings

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"starsplit/internal/splits"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump it when the schema
// changes; users then need to delete the settings database.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Settings keys. One row per toggle.
const (
	keyStopOnLoad  = "stop_on_load"
	splitKeyPrefix = "split."
)

// Store persists the user's split preferences in SQLite so the CLI can
// change them while the daemon runs.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the settings database at path, seeding
// missing toggles from defaults.
func Open(path string, defaults splits.Preferences) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	ctx := context.Background()
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.seed(ctx, defaults); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Preferences returns the live preference set.
func (s *Store) Preferences(ctx context.Context) (splits.Preferences, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return splits.Preferences{}, fmt.Errorf("read settings: %w", err)
	}
	defer rows.Close()

	var prefs splits.Preferences
	for rows.Next() {
		var key string
		var value bool
		if err := rows.Scan(&key, &value); err != nil {
			return splits.Preferences{}, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case splitKeyPrefix + string(splits.Mountain):
			prefs.Mountain = value
		case splitKeyPrefix + string(splits.Town):
			prefs.Town = value
		case splitKeyPrefix + string(splits.Mob):
			prefs.Mob = value
		case splitKeyPrefix + string(splits.LevelUp):
			prefs.LevelUp = value
		case splitKeyPrefix + string(splits.Dungeon):
			prefs.Dungeon = value
		case keyStopOnLoad:
			prefs.StopOnLoad = value
		}
	}
	if err := rows.Err(); err != nil {
		return splits.Preferences{}, fmt.Errorf("read settings: %w", err)
	}
	return prefs, nil
}

// SetSplit enables or disables one split category. The boss split is not
// stored; it always fires.
func (s *Store) SetSplit(ctx context.Context, category splits.Category, enabled bool) error {
	switch category {
	case splits.Mountain, splits.Town, splits.Mob, splits.LevelUp, splits.Dungeon:
	case splits.Boss:
		return errors.New("the boss split cannot be disabled")
	default:
		return fmt.Errorf("unknown split category %q", category)
	}
	return s.put(ctx, splitKeyPrefix+string(category), enabled)
}

// SetStopOnLoad toggles pausing the timer during level loads.
func (s *Store) SetStopOnLoad(ctx context.Context, enabled bool) error {
	return s.put(ctx, keyStopOnLoad, enabled)
}

func (s *Store) put(ctx context.Context, key string, value bool) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("store setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context, defaults splits.Preferences) error {
	seeds := map[string]bool{
		splitKeyPrefix + string(splits.Mountain): defaults.Mountain,
		splitKeyPrefix + string(splits.Town):     defaults.Town,
		splitKeyPrefix + string(splits.Mob):      defaults.Mob,
		splitKeyPrefix + string(splits.LevelUp):  defaults.LevelUp,
		splitKeyPrefix + string(splits.Dungeon):  defaults.Dungeon,
		keyStopOnLoad:                            defaults.StopOnLoad,
	}
	for key, value := range seeds {
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", key, value,
		); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
