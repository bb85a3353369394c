package splits

// Category names a run checkpoint.
type Category string

const (
	Mountain Category = "mountain"
	Town     Category = "town"
	Mob      Category = "mob"
	LevelUp  Category = "level_up"
	Dungeon  Category = "dungeon"
	Boss     Category = "boss"
)

// Categories returns every split category in run order.
func Categories() []Category {
	return []Category{Mountain, Town, Mob, LevelUp, Dungeon, Boss}
}

// ParseCategory maps a category name to its Category value.
func ParseCategory(name string) (Category, bool) {
	for _, category := range Categories() {
		if string(category) == name {
			return category, true
		}
	}
	return "", false
}

// Kind discriminates timer-control actions.
type Kind int

const (
	KindResetAndStart Kind = iota
	KindSplit
	KindPause
	KindResume
)

// Action is one timer-control decision emitted by the progress core.
// Category is set only for KindSplit.
type Action struct {
	Kind     Kind
	Category Category
}

// ResetAndStart begins a fresh run on the timer.
func ResetAndStart() Action { return Action{Kind: KindResetAndStart} }

// Split marks the checkpoint for the given category.
func Split(category Category) Action { return Action{Kind: KindSplit, Category: category} }

// Pause freezes the timer's elapsed-time accounting.
func Pause() Action { return Action{Kind: KindPause} }

// Resume unfreezes the timer's elapsed-time accounting.
func Resume() Action { return Action{Kind: KindResume} }

func (a Action) String() string {
	switch a.Kind {
	case KindResetAndStart:
		return "reset_and_start"
	case KindSplit:
		return "split:" + string(a.Category)
	case KindPause:
		return "pause"
	case KindResume:
		return "resume"
	default:
		return "unknown"
	}
}
