package telemetry

// EnemyHandle identifies one enemy combat target inside the game process.
// It stays opaque to callers; only the source knows how to dereference it.
type EnemyHandle uint64

// Enemy pairs an enemy's handle with the hit points it entered combat with.
type Enemy struct {
	Handle  EnemyHandle
	StartHP uint32
}

// Source yields best-effort readings of the game's session counters. Every
// method is synchronous and non-blocking: it either returns a value or
// reports absence immediately. A failed read and "not yet available" are
// indistinguishable to callers, and neither is an error.
type Source interface {
	// PlayTime returns the game's own elapsed play time in whole seconds.
	PlayTime() (uint64, bool)
	// Loading reports whether a level load is in progress.
	Loading() (bool, bool)
	// PartyLevel returns the party's current level.
	PartyLevel() (uint32, bool)
	// EncounterSize returns the number of enemies in the current encounter.
	EncounterSize() (uint32, bool)
	// EncounterDone reports whether the current encounter has finished.
	EncounterDone() (bool, bool)
	// FirstEnemy returns the first enemy of the current encounter along
	// with its starting hit points.
	FirstEnemy() (Enemy, bool)
	// CurrentHP returns the current hit points of the given enemy.
	CurrentHP(enemy EnemyHandle) (uint32, bool)
}
