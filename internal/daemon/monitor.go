package daemon

import (
	"context"
	"errors"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"starsplit/internal/config"
	"starsplit/internal/logging"
	"starsplit/internal/procmem"
	"starsplit/internal/splits"
	"starsplit/internal/telemetry"
)

// sourceFactory opens a telemetry source for an attached process and
// returns a liveness probe alongside it.
type sourceFactory func(pid int) (telemetry.Source, func() bool, error)

// monitor scans for the game process and runs one session per attachment.
// Sessions run inline on the monitor goroutine: there is exactly one
// play-through to track, so attach scanning pauses while attached.
type monitor struct {
	logger *slog.Logger
	timer  Timer
	prefs  preferencesFunc

	processName  string
	defaults     splits.Preferences
	tickInterval time.Duration
	attachEvery  time.Duration

	findProcess func(name string) (int, error)
	openSource  sourceFactory

	mu       sync.Mutex
	running  bool
	current  *session
	pid      int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func newMonitor(cfg *config.Config, logger *slog.Logger, timer Timer, prefs preferencesFunc, profile telemetry.Profile) *monitor {
	tick := time.Second / time.Duration(cfg.Daemon.TickRate)
	return &monitor{
		logger:       logging.NewComponentLogger(logger, "attach-monitor"),
		timer:        timer,
		prefs:        prefs,
		processName:  cfg.Game.ProcessName,
		defaults:     cfg.Splits.Preferences(),
		tickInterval: tick,
		attachEvery:  time.Duration(cfg.Daemon.AttachInterval) * time.Second,
		findProcess:  procmem.FindProcessByName,
		openSource: func(pid int) (telemetry.Source, func() bool, error) {
			reader, err := procmem.Open(pid)
			if err != nil {
				return nil, nil, err
			}
			base, err := procmem.FindModuleBase(pid, profile.Module)
			if err != nil {
				return nil, nil, err
			}
			return telemetry.NewReader(reader, profile, base), reader.Alive, nil
		},
	}
}

func (m *monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("attach monitor already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.ctx = runCtx
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	go m.loop()
	return nil
}

func (m *monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *monitor) loop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		pid, err := m.findProcess(m.processName)
		if err != nil {
			if !errors.Is(err, procmem.ErrProcessNotFound) {
				m.logger.Warn("process scan failed", logging.Error(err))
			}
			if !m.wait() {
				return
			}
			continue
		}

		source, alive, err := m.openSource(pid)
		if err != nil {
			m.logger.Warn("attach failed",
				logging.Int(logging.FieldPID, pid),
				logging.Error(err))
			if !m.wait() {
				return
			}
			continue
		}

		sessionID := uuid.NewString()
		sessionLogger := m.logger.With(
			logging.String(logging.FieldSessionID, sessionID),
			logging.Int(logging.FieldPID, pid))
		sess := newSession(sessionID, sessionLogger, source, alive, m.timer, m.prefs, m.tickInterval, m.defaults)

		m.setCurrent(sess, pid)
		sessionLogger.Info("attached to game process")
		sess.run(m.ctx)
		m.setCurrent(nil, 0)
		sessionLogger.Info("session ended")

		if !m.wait() {
			return
		}
	}
}

// wait sleeps one attach interval; it returns false when the monitor is
// shutting down.
func (m *monitor) wait() bool {
	select {
	case <-m.ctx.Done():
		return false
	case <-time.After(m.attachEvery):
		return true
	}
}

func (m *monitor) setCurrent(sess *session, pid int) {
	m.mu.Lock()
	m.current = sess
	m.pid = pid
	m.mu.Unlock()
}

// Session returns the live session and its pid, or nil while detached.
func (m *monitor) Session() (*session, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.pid
}
