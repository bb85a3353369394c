package daemon

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"starsplit/internal/config"
	"starsplit/internal/livesplit"
	"starsplit/internal/logging"
	"starsplit/internal/settings"
	"starsplit/internal/splits"
	"starsplit/internal/telemetry"
)

// SessionStatus describes the live attachment, when one exists.
type SessionStatus struct {
	Attached  bool
	PID       int
	SessionID string
	State     string
	Stats     SessionStats
}

// Status is a point-in-time report of the daemon.
type Status struct {
	Running        bool
	DaemonPID      int
	Session        SessionStatus
	LockPath       string
	SettingsDBPath string
	SocketPath     string
}

// Daemon owns the attach monitor, the timer connection, and the settings
// store. A file lock guarantees a single instance per state directory.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *settings.Store
	timer   Timer
	monitor *monitor
	lock    *flock.Flock

	mu      sync.Mutex
	started bool
	locked  bool
}

// New builds a daemon from configuration. The settings store must already
// be open; the daemon does not close it.
func New(cfg *config.Config, logger *slog.Logger, store *settings.Store) (*Daemon, error) {
	timer := livesplit.NewClient(cfg.Timer.Address,
		time.Duration(cfg.Timer.DialTimeout)*time.Second,
		time.Duration(cfg.Timer.CommandTimeout)*time.Second)
	return NewWithTimer(cfg, logger, store, timer)
}

// NewWithTimer is New with an injectable timer, used by tests.
func NewWithTimer(cfg *config.Config, logger *slog.Logger, store *settings.Store, timer Timer) (*Daemon, error) {
	profile, err := telemetry.LoadProfile(cfg.Game.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load pointer profile: %w", err)
	}
	d := &Daemon{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "daemon"),
		store:  store,
		timer:  timer,
		lock:   flock.New(cfg.LockPath()),
	}
	d.monitor = newMonitor(cfg, logger, timer, store.Preferences, profile)
	return d, nil
}

// Start acquires the instance lock and launches the attach monitor.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return fmt.Errorf("daemon already started")
	}

	locked, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance is already running (lock %s)", d.cfg.LockPath())
	}
	d.locked = true

	if err := d.monitor.Start(ctx); err != nil {
		d.releaseLock()
		return err
	}
	d.started = true
	d.logger.Info("daemon started",
		logging.String("process_name", d.cfg.Game.ProcessName),
		logging.String("timer_address", d.cfg.Timer.Address))
	return nil
}

// Stop halts the attach monitor and releases the instance lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	d.mu.Unlock()

	d.monitor.Stop()
	if closer, ok := d.timer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	d.mu.Lock()
	d.releaseLock()
	d.mu.Unlock()
	d.logger.Info("daemon stopped")
}

func (d *Daemon) releaseLock() {
	if !d.locked {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release instance lock", logging.Error(err))
	}
	d.locked = false
}

// Status reports the daemon and session state.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	running := d.started
	d.mu.Unlock()

	st := Status{
		Running:        running,
		DaemonPID:      os.Getpid(),
		LockPath:       d.cfg.LockPath(),
		SettingsDBPath: d.cfg.SettingsDBPath(),
		SocketPath:     d.cfg.SocketPath(),
	}
	if sess, pid := d.monitor.Session(); sess != nil {
		stats, state, _ := sess.snapshot()
		st.Session = SessionStatus{
			Attached:  true,
			PID:       pid,
			SessionID: sess.id,
			State:     state,
			Stats:     stats,
		}
	} else {
		st.Session.State = "detached"
	}
	return st
}

// Preferences returns the current split toggles from the settings store.
func (d *Daemon) Preferences(ctx context.Context) (splits.Preferences, error) {
	return d.store.Preferences(ctx)
}

// SetSplit toggles one split category.
func (d *Daemon) SetSplit(ctx context.Context, category splits.Category, enabled bool) error {
	return d.store.SetSplit(ctx, category, enabled)
}

// SetStopOnLoad toggles load-time pausing.
func (d *Daemon) SetStopOnLoad(ctx context.Context, enabled bool) error {
	return d.store.SetStopOnLoad(ctx, enabled)
}
