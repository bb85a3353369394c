package splits

// Preferences selects which timer-control actions reach the timer.
type Preferences struct {
	Mountain   bool
	Town       bool
	Mob        bool
	LevelUp    bool
	Dungeon    bool
	StopOnLoad bool
}

// Filter gates an action against user preferences. Run starts and the
// finishing boss split always pass; other splits pass when their category
// is enabled, and Pause/Resume pass when stop-on-load is enabled.
func Filter(prefs Preferences, action Action) (Action, bool) {
	switch action.Kind {
	case KindResetAndStart:
		return action, true
	case KindSplit:
		return action, prefs.enabled(action.Category)
	case KindPause, KindResume:
		return action, prefs.StopOnLoad
	default:
		return Action{}, false
	}
}

func (p Preferences) enabled(category Category) bool {
	switch category {
	case Mountain:
		return p.Mountain
	case Town:
		return p.Town
	case Mob:
		return p.Mob
	case LevelUp:
		return p.LevelUp
	case Dungeon:
		return p.Dungeon
	case Boss:
		return true
	default:
		return false
	}
}
