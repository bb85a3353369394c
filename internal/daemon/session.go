package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"starsplit/internal/livesplit"
	"starsplit/internal/logging"
	"starsplit/internal/splits"
	"starsplit/internal/telemetry"
)

type preferencesFunc func(ctx context.Context) (splits.Preferences, error)

// session drives one attached game process at a fixed tick rate. Each tick
// it reconciles the timer phase, then drains the progress core until it
// yields no more actions, so every action decided for a tick dispatches in
// order before the next telemetry sample.
type session struct {
	id     string
	logger *slog.Logger
	source telemetry.Source
	alive  func() bool
	timer  Timer
	prefs  preferencesFunc

	progress *splits.Progress
	interval time.Duration

	// Last known timer phase; reused when a phase query fails so a
	// flaky timer connection doesn't spuriously reset the run.
	phase livesplit.Phase

	// Last preferences that were successfully read.
	lastPrefs splits.Preferences

	// mu guards the snapshot fields below, which status queries read
	// from outside the tick goroutine.
	mu        sync.Mutex
	stats     SessionStats
	stateName string
	startedAt time.Time
}

// SessionStats counts dispatched actions for status reporting.
type SessionStats struct {
	Resets   uint64
	Splits   uint64
	Pauses   uint64
	Resumes  uint64
	Filtered uint64
}

func newSession(id string, logger *slog.Logger, source telemetry.Source, alive func() bool, timer Timer, prefs preferencesFunc, interval time.Duration, defaults splits.Preferences) *session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &session{
		id:        id,
		logger:    logger,
		source:    source,
		alive:     alive,
		timer:     timer,
		prefs:     prefs,
		progress:  splits.NewProgress(),
		stateName: "not_running",
		interval:  interval,
		phase:     livesplit.PhaseNotRunning,
		lastPrefs: defaults,
		startedAt: time.Now(),
	}
}

// run ticks until the context is canceled or the game process exits. All
// automaton state dies with the session; the next attachment starts from
// scratch.
func (s *session) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if s.alive != nil && !s.alive() {
			s.logger.Info("game process exited")
			return
		}
		s.step(ctx)
	}
}

// step performs one tick: phase reconciliation, then the drain loop.
func (s *session) step(ctx context.Context) {
	s.syncPhase(ctx)

	for {
		action, ok := s.progress.Act(s.source)
		if !ok {
			break
		}
		s.dispatch(ctx, action)
	}

	s.mu.Lock()
	s.stateName = s.progress.State()
	s.mu.Unlock()
}

// snapshot returns a copy of the session's status fields.
func (s *session) snapshot() (SessionStats, string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.stateName, s.startedAt
}

// syncPhase queries the timer and rebuilds the progress core when the
// timer has returned to rest while a run was in flight, meaning the
// operator reset the timer by hand or the previous run finished.
func (s *session) syncPhase(ctx context.Context) {
	phase, err := s.timer.Phase(ctx)
	if err != nil {
		s.logger.Debug("timer phase unavailable", logging.Error(err))
		return
	}
	s.phase = phase
	if phase == livesplit.PhaseNotRunning || phase == livesplit.PhaseEnded {
		s.progress.Reset()
	}
}

func (s *session) dispatch(ctx context.Context, action splits.Action) {
	prefs, err := s.prefs(ctx)
	if err != nil {
		s.logger.Warn("read preferences failed, using last known", logging.Error(err))
		prefs = s.lastPrefs
	} else {
		s.lastPrefs = prefs
	}

	gated, ok := splits.Filter(prefs, action)
	if !ok {
		s.logger.Debug("action filtered",
			logging.String(logging.FieldAction, action.String()))
		s.mu.Lock()
		s.stats.Filtered++
		s.mu.Unlock()
		return
	}

	s.logger.Info("dispatching action",
		logging.String(logging.FieldAction, gated.String()),
		logging.String(logging.FieldState, s.progress.State()))

	var dispatchErr error
	switch gated.Kind {
	case splits.KindResetAndStart:
		dispatchErr = s.resetAndStart(ctx)
		s.count(func(st *SessionStats) { st.Resets++ })
	case splits.KindSplit:
		dispatchErr = s.timer.Split(ctx)
		s.count(func(st *SessionStats) { st.Splits++ })
	case splits.KindPause:
		dispatchErr = s.timer.PauseGameTime(ctx)
		s.count(func(st *SessionStats) { st.Pauses++ })
	case splits.KindResume:
		dispatchErr = s.timer.ResumeGameTime(ctx)
		s.count(func(st *SessionStats) { st.Resumes++ })
	default:
		dispatchErr = errors.New("unknown action kind")
	}
	if dispatchErr != nil {
		s.logger.Warn("timer command failed",
			logging.String(logging.FieldAction, gated.String()),
			logging.Error(dispatchErr))
	}
}

// resetAndStart resets the timer only out of a terminal ended state, then
// starts it.
func (s *session) resetAndStart(ctx context.Context) error {
	phase, err := s.timer.Phase(ctx)
	if err == nil && phase == livesplit.PhaseEnded {
		if err := s.timer.Reset(ctx); err != nil {
			return err
		}
	}
	return s.timer.StartTimer(ctx)
}

func (s *session) count(update func(*SessionStats)) {
	s.mu.Lock()
	update(&s.stats)
	s.mu.Unlock()
}
