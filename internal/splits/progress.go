package splits

import (
	"starsplit/internal/telemetry"
	"starsplit/internal/watch"
)

// Progress wraps the progression with a loading overlay and a one-slot
// deferred action queue. It is the per-tick entry point: callers poll Act
// until it yields nothing, so every action decided for a tick dispatches
// before the next telemetry sample.
//
// Unlike the per-state watchers, the loading watcher spans the whole run.
type Progress struct {
	loading watch.Watcher[bool]
	inLoad  bool
	inner   *Progression
	pending *Action
}

// NewProgress returns a fresh progress tracker waiting for a run.
func NewProgress() *Progress {
	return &Progress{inner: NewProgression()}
}

// Act performs one poll. A domain action decided on the poll that starts a
// load is deferred and held until the load ends, so a split decided
// mid-load comes out right after the matching Resume and Pause/Resume
// always bracket a load no matter what happened during it.
func (p *Progress) Act(src telemetry.Source) (Action, bool) {
	if change, ok := p.loading.Update(src.Loading()); ok {
		p.inLoad = change.New
		switch {
		case change.ChangedTo(false):
			return Resume(), true
		case change.ChangedTo(true):
			// The slot is free here: callers drain every decided action
			// before sampling new telemetry, so the previous deferral is
			// gone by the time another load can begin.
			if action, decided := p.inner.Advance(true, src); decided {
				p.pending = &action
			}
			return Pause(), true
		}
	}

	if p.pending != nil && !p.inLoad {
		action := *p.pending
		p.pending = nil
		return action, true
	}

	return p.inner.Advance(false, src)
}

// Reset discards all run progress. It is a no-op while the progression is
// already waiting for a fresh run; resetting then would clobber the
// play-time sentinel.
func (p *Progress) Reset() {
	if p.inner.Idle() {
		return
	}
	*p = Progress{inner: NewProgression()}
}

// Idle reports whether the progression is waiting for a fresh run.
func (p *Progress) Idle() bool {
	return p.inner.Idle()
}

// State returns the live progression state's name for status reporting.
func (p *Progress) State() string {
	return p.inner.State()
}
