package livesplit_test

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"starsplit/internal/livesplit"
)

// fakeServer speaks just enough of the LiveSplit Server protocol: it
// records every received command and answers phase queries with the
// scripted phase.
type fakeServer struct {
	listener net.Listener

	mu       sync.Mutex
	commands []string
	phase    string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &fakeServer{listener: listener, phase: "NotRunning"}
	go srv.serve()
	t.Cleanup(func() {
		listener.Close()
	})
	return srv
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimRight(line, "\r\n")
		s.mu.Lock()
		s.commands = append(s.commands, command)
		phase := s.phase
		s.mu.Unlock()
		if command == "getcurrenttimerphase" {
			if _, err := conn.Write([]byte(phase + "\r\n")); err != nil {
				return
			}
		}
	}
}

func (s *fakeServer) addr() string {
	return s.listener.Addr().String()
}

func (s *fakeServer) setPhase(phase string) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

func (s *fakeServer) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func waitForCommands(t *testing.T, srv *fakeServer, want ...string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := srv.received()
		if len(got) >= len(want) {
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("command %d = %q, want %q (all: %v)", i, got[i], want[i], got)
				}
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %v, got %v", want, srv.received())
}

func TestCommandsReachServer(t *testing.T) {
	srv := newFakeServer(t)
	client := livesplit.NewClient(srv.addr(), time.Second, time.Second)
	t.Cleanup(func() {
		client.Close()
	})

	ctx := context.Background()
	if err := client.StartTimer(ctx); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	if err := client.Split(ctx); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if err := client.PauseGameTime(ctx); err != nil {
		t.Fatalf("PauseGameTime: %v", err)
	}
	if err := client.ResumeGameTime(ctx); err != nil {
		t.Fatalf("ResumeGameTime: %v", err)
	}
	if err := client.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	waitForCommands(t, srv, "starttimer", "split", "pausegametime", "unpausegametime", "reset")
}

func TestPhaseQuery(t *testing.T) {
	srv := newFakeServer(t)
	client := livesplit.NewClient(srv.addr(), time.Second, time.Second)
	t.Cleanup(func() {
		client.Close()
	})

	ctx := context.Background()
	phase, err := client.Phase(ctx)
	if err != nil {
		t.Fatalf("Phase: %v", err)
	}
	if phase != livesplit.PhaseNotRunning {
		t.Fatalf("phase = %s, want NotRunning", phase)
	}

	srv.setPhase("Running")
	phase, err = client.Phase(ctx)
	if err != nil {
		t.Fatalf("Phase: %v", err)
	}
	if phase != livesplit.PhaseRunning {
		t.Fatalf("phase = %s, want Running", phase)
	}
}

func TestPhaseRejectsUnknownReply(t *testing.T) {
	srv := newFakeServer(t)
	srv.setPhase("Sideways")
	client := livesplit.NewClient(srv.addr(), time.Second, time.Second)
	t.Cleanup(func() {
		client.Close()
	})

	_, err := client.Phase(context.Background())
	if !errors.Is(err, livesplit.ErrUnknownPhase) {
		t.Fatalf("err = %v, want ErrUnknownPhase", err)
	}
}

func TestClientRedialsAfterServerDrop(t *testing.T) {
	srv := newFakeServer(t)
	client := livesplit.NewClient(srv.addr(), time.Second, time.Second)
	t.Cleanup(func() {
		client.Close()
	})

	ctx := context.Background()
	if _, err := client.Phase(ctx); err != nil {
		t.Fatalf("Phase: %v", err)
	}

	// Drop every live connection; the next query must redial.
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := client.Phase(ctx); err != nil {
		t.Fatalf("Phase after reconnect: %v", err)
	}
}

func TestDialFailureIsAnError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	client := livesplit.NewClient(addr, 200*time.Millisecond, 200*time.Millisecond)
	if err := client.StartTimer(context.Background()); err == nil {
		t.Fatal("command against a closed port should fail")
	}
}
