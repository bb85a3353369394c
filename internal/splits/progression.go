package splits

import (
	"math"

	"starsplit/internal/telemetry"
	"starsplit/internal/watch"
)

// Level load counts within the Started state. The first load is the
// tutorial exit and is intentionally ignored.
const (
	mountainLoad = 2
	townLoad     = 3
	dungeonLoad  = 4
)

// Opaque signatures of this game build. The blue-room mob fields four
// enemies, the party caps at level four, and the final boss is the only
// encounter that opens at 700 hit points.
const (
	mobEncounterSize  = 4
	leveledPartyLevel = 4
	bossStartHP       = 700
)

// Progression is the closed state machine over run milestones. Exactly one
// state is live at a time; a transition replaces the state wholesale, never
// mutates it partially. Each poll emits at most one action, and a poll
// whose required telemetry is absent causes no transition and no action.
type Progression struct {
	state state
}

type state interface {
	// advance re-evaluates the state's exit condition against fresh
	// telemetry. It returns the state to continue with (possibly the
	// receiver) and at most one action.
	advance(loading bool, src telemetry.Source) (state, Action, bool)
	name() string
}

// NewProgression returns a progression waiting for a fresh run.
func NewProgression() *Progression {
	return &Progression{state: newNotRunning()}
}

// Advance polls the live state once. loading is the caller's view of the
// load flag for this poll.
func (p *Progression) Advance(loading bool, src telemetry.Source) (Action, bool) {
	next, action, ok := p.state.advance(loading, src)
	p.state = next
	return action, ok
}

// Idle reports whether the progression is waiting for a fresh run.
func (p *Progression) Idle() bool {
	_, idle := p.state.(*notRunning)
	return idle
}

// State returns the live state's name for status reporting.
func (p *Progression) State() string {
	return p.state.name()
}

// notRunning waits for the game to report a brand-new save. The play-time
// watcher is seeded to a sentinel maximum so the first genuine zero reading
// registers as a change; a reported play time of exactly zero is the game's
// own fresh-run signal.
type notRunning struct {
	playTime watch.Watcher[uint64]
}

func newNotRunning() *notRunning {
	s := &notRunning{}
	s.playTime.Seed(math.MaxUint64)
	return s
}

func (s *notRunning) name() string { return "not_running" }

func (s *notRunning) advance(_ bool, src telemetry.Source) (state, Action, bool) {
	if change, ok := s.playTime.Update(src.PlayTime()); ok && change.ChangedTo(0) {
		return &started{}, ResetAndStart(), true
	}
	return s, Action{}, false
}

// started counts level loads out of the opening areas. The counter carries
// forward across polls; it is the only piece of state that mutates in
// place.
type started struct {
	levelLoads int
}

func (s *started) name() string { return "started" }

func (s *started) advance(loading bool, _ telemetry.Source) (state, Action, bool) {
	if !loading {
		return s, Action{}, false
	}
	s.levelLoads++
	switch s.levelLoads {
	case mountainLoad:
		return s, Split(Mountain), true
	case townLoad:
		return s, Split(Town), true
	case dungeonLoad:
		return inDungeon{}, Action{}, false
	}
	return s, Action{}, false
}

// inDungeon waits for the special mob encounter to begin.
type inDungeon struct{}

func (inDungeon) name() string { return "in_dungeon" }

func (s inDungeon) advance(_ bool, src telemetry.Source) (state, Action, bool) {
	if size, ok := src.EncounterSize(); ok && size == mobEncounterSize {
		return againstMob{}, Action{}, false
	}
	return s, Action{}, false
}

// againstMob waits for the mob encounter to finish.
type againstMob struct{}

func (againstMob) name() string { return "against_mob" }

func (s againstMob) advance(_ bool, src telemetry.Source) (state, Action, bool) {
	if done, ok := src.EncounterDone(); ok && done {
		return &dungeonAgain{}, Split(Mob), true
	}
	return s, Action{}, false
}

// dungeonAgain waits for the party to level up.
type dungeonAgain struct {
	partyLevel watch.Watcher[uint32]
}

func (s *dungeonAgain) name() string { return "dungeon_again" }

func (s *dungeonAgain) advance(_ bool, src telemetry.Source) (state, Action, bool) {
	if change, ok := s.partyLevel.Update(src.PartyLevel()); ok && change.ChangedTo(leveledPartyLevel) {
		return leveled{}, Split(LevelUp), true
	}
	return s, Action{}, false
}

// leveled waits for an encounter whose first enemy opens at the boss's
// starting hit points.
type leveled struct{}

func (leveled) name() string { return "leveled" }

func (s leveled) advance(_ bool, src telemetry.Source) (state, Action, bool) {
	enemy, ok := src.FirstEnemy()
	if !ok || enemy.StartHP != bossStartHP {
		return s, Action{}, false
	}
	boss := &finalBoss{enemy: enemy.Handle}
	boss.hp.Seed(bossStartHP)
	return boss, Split(Dungeon), true
}

// finalBoss tracks the boss's hit points until they reach zero, which ends
// the run and resets the progression.
type finalBoss struct {
	enemy telemetry.EnemyHandle
	hp    watch.Watcher[uint32]
}

func (s *finalBoss) name() string { return "final_boss" }

func (s *finalBoss) advance(_ bool, src telemetry.Source) (state, Action, bool) {
	if change, ok := s.hp.Update(src.CurrentHP(s.enemy)); ok && change.ChangedTo(0) {
		return newNotRunning(), Split(Boss), true
	}
	return s, Action{}, false
}
