package ipc_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"starsplit/internal/config"
	"starsplit/internal/daemon"
	"starsplit/internal/ipc"
	"starsplit/internal/livesplit"
	"starsplit/internal/logging"
	"starsplit/internal/settings"
	"starsplit/internal/splits"
)

type idleTimer struct{}

func (idleTimer) Phase(context.Context) (livesplit.Phase, error) {
	return livesplit.PhaseNotRunning, nil
}
func (idleTimer) StartTimer(context.Context) error     { return nil }
func (idleTimer) Split(context.Context) error          { return nil }
func (idleTimer) Reset(context.Context) error          { return nil }
func (idleTimer) PauseGameTime(context.Context) error  { return nil }
func (idleTimer) ResumeGameTime(context.Context) error { return nil }

func TestServerClientRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Daemon.StateDir = t.TempDir()
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	store, err := settings.Open(cfg.SettingsDBPath(), cfg.Splits.Preferences())
	if err != nil {
		t.Fatalf("settings.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	logger := logging.NewNop()
	d, err := daemon.NewWithTimer(cfg, logger, store, idleTimer{})
	if err != nil {
		t.Fatalf("daemon.NewWithTimer: %v", err)
	}
	t.Cleanup(d.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Daemon.StateDir, "ipc-test.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	startResp, err := client.Start()
	if err != nil {
		t.Fatalf("Start RPC failed: %v", err)
	}
	if !startResp.Started {
		t.Fatalf("expected Started=true, message=%s", startResp.Message)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon to be running")
	}
	if status.Attached {
		t.Fatal("expected no attached session without a game process")
	}
	if !status.Settings.StopOnLoad {
		t.Fatal("expected stop_on_load enabled by default")
	}
	if !status.Settings.Splits[string(splits.Boss)] {
		t.Fatal("expected boss split to always report enabled")
	}

	setResp, err := client.SettingsSet(string(splits.Town), false)
	if err != nil {
		t.Fatalf("SettingsSet town failed: %v", err)
	}
	if setResp.Settings.Splits[string(splits.Town)] {
		t.Fatal("expected town split disabled after set")
	}
	if !setResp.Settings.Splits[string(splits.Mountain)] {
		t.Fatal("expected mountain split untouched")
	}

	if _, err := client.SettingsSet(string(splits.Boss), false); err == nil {
		t.Fatal("expected disabling the boss split to fail")
	}
	if _, err := client.SettingsSet("bogus", true); err == nil {
		t.Fatal("expected unknown setting name to fail")
	}

	loadResp, err := client.SettingsSet("stop_on_load", false)
	if err != nil {
		t.Fatalf("SettingsSet stop_on_load failed: %v", err)
	}
	if loadResp.Settings.StopOnLoad {
		t.Fatal("expected stop_on_load disabled after set")
	}

	getResp, err := client.SettingsGet()
	if err != nil {
		t.Fatalf("SettingsGet failed: %v", err)
	}
	if getResp.Settings.Splits[string(splits.Town)] || getResp.Settings.StopOnLoad {
		t.Fatalf("expected toggles to persist, got %#v", getResp.Settings)
	}

	stopResp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop RPC failed: %v", err)
	}
	if !stopResp.Stopped {
		t.Fatal("expected stop response to be true")
	}

	status2, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if status2.Running {
		t.Fatal("expected daemon to be stopped")
	}
}
