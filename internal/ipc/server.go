package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"starsplit/internal/daemon"
	"starsplit/internal/logging"
	"starsplit/internal/splits"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName("Starsplit", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func payloadFromPreferences(prefs splits.Preferences) SettingsPayload {
	return SettingsPayload{
		Splits: map[string]bool{
			string(splits.Mountain): prefs.Mountain,
			string(splits.Town):     prefs.Town,
			string(splits.Mob):      prefs.Mob,
			string(splits.LevelUp):  prefs.LevelUp,
			string(splits.Dungeon):  prefs.Dungeon,
			string(splits.Boss):     true,
		},
		StopOnLoad: prefs.StopOnLoad,
	}
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	s.logger.Debug("daemon start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.logger.Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.DaemonPID = status.DaemonPID
	resp.Attached = status.Session.Attached
	resp.GamePID = status.Session.PID
	resp.SessionID = status.Session.SessionID
	resp.State = status.Session.State
	resp.Counters = SessionCounters{
		Resets:   status.Session.Stats.Resets,
		Splits:   status.Session.Stats.Splits,
		Pauses:   status.Session.Stats.Pauses,
		Resumes:  status.Session.Stats.Resumes,
		Filtered: status.Session.Stats.Filtered,
	}
	resp.LockPath = status.LockPath
	resp.SettingsDBPath = status.SettingsDBPath
	resp.SocketPath = status.SocketPath

	prefs, err := s.daemon.Preferences(s.ctx)
	if err != nil {
		return err
	}
	resp.Settings = payloadFromPreferences(prefs)
	return nil
}

func (s *service) SettingsGet(_ SettingsGetRequest, resp *SettingsGetResponse) error {
	prefs, err := s.daemon.Preferences(s.ctx)
	if err != nil {
		return err
	}
	resp.Settings = payloadFromPreferences(prefs)
	return nil
}

func (s *service) SettingsSet(req SettingsSetRequest, resp *SettingsSetResponse) error {
	s.logger.Debug("settings change requested",
		logging.String("name", req.Name),
		logging.Bool("enabled", req.Enabled))
	if req.Name == "stop_on_load" {
		if err := s.daemon.SetStopOnLoad(s.ctx, req.Enabled); err != nil {
			return err
		}
	} else {
		category, ok := splits.ParseCategory(req.Name)
		if !ok {
			return fmt.Errorf("unknown setting %q", req.Name)
		}
		if err := s.daemon.SetSplit(s.ctx, category, req.Enabled); err != nil {
			return err
		}
	}
	prefs, err := s.daemon.Preferences(s.ctx)
	if err != nil {
		return err
	}
	resp.Settings = payloadFromPreferences(prefs)
	return nil
}
