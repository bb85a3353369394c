package telemetry

// Unity object layout constants shared by every list the profile points
// at: a List<T> keeps its element count at +0x18 and its backing array
// behind an object header of 0x10, whose elements start after a 0x20
// array header.
const (
	listCountOffset  = 0x18
	objectHeaderSize = 0x10
	arrayHeaderSize  = 0x20
)

// Memory is the slice of process memory access the reader needs. Reads
// fail with an error; the reader degrades every failure to an absent
// reading.
type Memory interface {
	ReadPointer(addr uint64) (uint64, error)
	ReadUint32(addr uint64) (uint32, error)
	ReadFloat64(addr uint64) (float64, error)
	ReadBool(addr uint64) (bool, error)
}

// Reader materializes the telemetry contract from raw process memory using
// a pointer profile. Singletons are re-resolved on every read, so a
// transient outage (mid-load teardown, partially constructed objects)
// self-heals as soon as the game restores them.
type Reader struct {
	mem     Memory
	profile Profile
	base    uint64
}

// NewReader builds a reader over mem with static offsets resolved against
// the module base address.
func NewReader(mem Memory, profile Profile, moduleBase uint64) *Reader {
	return &Reader{mem: mem, profile: profile, base: moduleBase}
}

// PlayTime returns the game's play time counter truncated to whole
// seconds.
func (r *Reader) PlayTime() (uint64, bool) {
	obj, ok := r.singleton(r.profile.ProgressionManager)
	if !ok {
		return 0, false
	}
	seconds, err := r.mem.ReadFloat64(obj + r.profile.PlayTimeOffset)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return uint64(seconds), true
}

// Loading reports whether a level load is in progress.
func (r *Reader) Loading() (bool, bool) {
	obj, ok := r.singleton(r.profile.LevelManager)
	if !ok {
		return false, false
	}
	loading, err := r.mem.ReadBool(obj + r.profile.LoadingOffset)
	if err != nil {
		return false, false
	}
	return loading, true
}

// PartyLevel returns the party's current level.
func (r *Reader) PartyLevel() (uint32, bool) {
	obj, ok := r.singleton(r.profile.CharacterStatsManager)
	if !ok {
		return 0, false
	}
	progress, ok := r.pointer(obj + r.profile.PartyProgressOffset)
	if !ok {
		return 0, false
	}
	level, err := r.mem.ReadUint32(progress + r.profile.CurrentLevelOffset)
	if err != nil {
		return 0, false
	}
	return level, true
}

// EncounterSize returns the number of enemy targets in the current
// encounter.
func (r *Reader) EncounterSize() (uint32, bool) {
	encounter, ok := r.currentEncounter()
	if !ok {
		return 0, false
	}
	targets, ok := r.pointer(encounter + r.profile.EnemyTargetsOffset)
	if !ok {
		return 0, false
	}
	size, err := r.mem.ReadUint32(targets + listCountOffset)
	if err != nil {
		return 0, false
	}
	return size, true
}

// EncounterDone reports whether the current encounter has finished.
func (r *Reader) EncounterDone() (bool, bool) {
	encounter, ok := r.currentEncounter()
	if !ok {
		return false, false
	}
	done, err := r.mem.ReadBool(encounter + r.profile.EncounterDoneOffset)
	if err != nil {
		return false, false
	}
	return done, true
}

// FirstEnemy returns the first enemy of the current encounter and the hit
// points its character data says it starts combat with.
func (r *Reader) FirstEnemy() (Enemy, bool) {
	first, ok := r.firstEnemyTarget()
	if !ok {
		return Enemy{}, false
	}
	owner, ok := r.pointer(first + r.profile.OwnerOffset)
	if !ok {
		return Enemy{}, false
	}
	data, ok := r.pointer(owner + r.profile.EnemyDataOffset)
	if !ok {
		return Enemy{}, false
	}
	hp, err := r.mem.ReadUint32(data + r.profile.HPOffset)
	if err != nil {
		return Enemy{}, false
	}
	return Enemy{Handle: EnemyHandle(first), StartHP: hp}, true
}

// CurrentHP returns the enemy's current hit points.
func (r *Reader) CurrentHP(enemy EnemyHandle) (uint32, bool) {
	if enemy == 0 {
		return 0, false
	}
	hp, err := r.mem.ReadUint32(uint64(enemy) + r.profile.CurrentHPOffset)
	if err != nil {
		return 0, false
	}
	return hp, true
}

func (r *Reader) currentEncounter() (uint64, bool) {
	obj, ok := r.singleton(r.profile.CombatManager)
	if !ok {
		return 0, false
	}
	return r.pointer(obj + r.profile.CurrentEncounterOffset)
}

func (r *Reader) firstEnemyTarget() (uint64, bool) {
	encounter, ok := r.currentEncounter()
	if !ok {
		return 0, false
	}
	targets, ok := r.pointer(encounter + r.profile.EnemyTargetsOffset)
	if !ok {
		return 0, false
	}
	array, ok := r.pointer(targets + objectHeaderSize)
	if !ok {
		return 0, false
	}
	return r.pointer(array + arrayHeaderSize)
}

// singleton resolves a module-relative static slot to the live instance it
// points at.
func (r *Reader) singleton(staticOffset uint64) (uint64, bool) {
	return r.pointer(r.base + staticOffset)
}

// pointer dereferences addr, treating a null pointer as an absent reading.
func (r *Reader) pointer(addr uint64) (uint64, bool) {
	target, err := r.mem.ReadPointer(addr)
	if err != nil || target == 0 {
		return 0, false
	}
	return target, true
}
