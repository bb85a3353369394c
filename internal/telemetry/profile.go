package telemetry

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed profile_demo.toml
var demoProfile []byte

// Profile locates every telemetry reading inside the game process. The
// static offsets are module-relative addresses of the game's manager
// singletons; the field offsets are byte offsets inside the objects they
// point at. Values describe the demo build this tool targets and can be
// overridden from a TOML file for other builds.
//
// What the resolved values mean is the progress core's business; the
// profile only says where to read them.
type Profile struct {
	// Module is the mapping inside the game process that static offsets
	// are relative to.
	Module string `toml:"module"`

	// ProgressionManager singleton: play time in seconds (stored by the
	// game as a float64).
	ProgressionManager uint64 `toml:"progression_manager"`
	PlayTimeOffset     uint64 `toml:"play_time_offset"`

	// LevelManager singleton: level-load flag.
	LevelManager  uint64 `toml:"level_manager"`
	LoadingOffset uint64 `toml:"loading_offset"`

	// CharacterStatsManager singleton: party progress object holding the
	// current party level.
	CharacterStatsManager uint64 `toml:"character_stats_manager"`
	PartyProgressOffset   uint64 `toml:"party_progress_offset"`
	CurrentLevelOffset    uint64 `toml:"current_level_offset"`

	// CombatManager singleton: current encounter object with its done
	// flag and enemy target list.
	CombatManager          uint64 `toml:"combat_manager"`
	CurrentEncounterOffset uint64 `toml:"current_encounter_offset"`
	EncounterDoneOffset    uint64 `toml:"encounter_done_offset"`
	EnemyTargetsOffset     uint64 `toml:"enemy_targets_offset"`

	// Enemy combat target object: current hit points, plus the chain to
	// the character data carrying the starting hit points.
	CurrentHPOffset uint64 `toml:"current_hp_offset"`
	OwnerOffset     uint64 `toml:"owner_offset"`
	EnemyDataOffset uint64 `toml:"enemy_data_offset"`
	HPOffset        uint64 `toml:"hp_offset"`
}

// DefaultProfile returns the built-in profile for the demo build.
func DefaultProfile() (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(demoProfile, &p); err != nil {
		return Profile{}, fmt.Errorf("parse built-in profile: %w", err)
	}
	return p, nil
}

// LoadProfile reads a profile from path, falling back to the built-in demo
// profile when path is empty or the file does not exist. Fields absent from
// the file keep their built-in values.
func LoadProfile(path string) (Profile, error) {
	p, err := DefaultProfile()
	if err != nil {
		return Profile{}, err
	}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func (p Profile) validate() error {
	if p.Module == "" {
		return errors.New("module must be set")
	}
	for name, value := range map[string]uint64{
		"progression_manager":     p.ProgressionManager,
		"level_manager":           p.LevelManager,
		"character_stats_manager": p.CharacterStatsManager,
		"combat_manager":          p.CombatManager,
	} {
		if value == 0 {
			return fmt.Errorf("%s must be set", name)
		}
	}
	return nil
}
