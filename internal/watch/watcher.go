package watch

// Change describes one recorded update of a tracked value. Old carries the
// previously stored value; OldOK is false on the very first recorded
// reading.
type Change[T comparable] struct {
	Old   T
	OldOK bool
	New   T
}

// ChangedTo reports whether this update made the value become target. The
// first recorded reading counts as a change when it equals target.
func (c Change[T]) ChangedTo(target T) bool {
	return c.New == target && !(c.OldOK && c.Old == target)
}

// Watcher retains the last observed value of a single attribute so callers
// can detect edges across best-effort readings. The zero value is ready to
// use.
type Watcher[T comparable] struct {
	prev   T
	prevOK bool
}

// Update records a reading. An absent reading (ok == false) leaves the
// watcher untouched and yields nothing. A present reading always yields a
// change record, even when the value is unchanged; callers decide
// significance through ChangedTo.
func (w *Watcher[T]) Update(value T, ok bool) (Change[T], bool) {
	if !ok {
		return Change[T]{}, false
	}
	change := Change[T]{Old: w.prev, OldOK: w.prevOK, New: value}
	w.prev = value
	w.prevOK = true
	return change, true
}

// Seed stores a previous value without a real reading. Seeding a sentinel
// makes the first genuine reading of a target value register as a change.
func (w *Watcher[T]) Seed(value T) {
	w.prev = value
	w.prevOK = true
}
