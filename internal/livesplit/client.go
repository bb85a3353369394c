package livesplit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Phase mirrors the timer phases LiveSplit Server reports.
type Phase string

const (
	PhaseNotRunning Phase = "NotRunning"
	PhaseRunning    Phase = "Running"
	PhaseEnded      Phase = "Ended"
	PhasePaused     Phase = "Paused"
)

// ErrUnknownPhase indicates the server replied with a phase this client
// does not recognize.
var ErrUnknownPhase = errors.New("unknown timer phase")

// Client drives a LiveSplit Server instance over TCP. Connections are
// lazy: the first command dials, and a failed command drops the connection
// so the next one redials. Safe for use from a single goroutine per the
// daemon's single-threaded tick model; the mutex only guards teardown
// racing a slow command.
type Client struct {
	addr        string
	dialTimeout time.Duration
	cmdTimeout  time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewClient returns a client for the LiveSplit Server at addr.
func NewClient(addr string, dialTimeout, cmdTimeout time.Duration) *Client {
	if dialTimeout <= 0 {
		dialTimeout = 2 * time.Second
	}
	if cmdTimeout <= 0 {
		cmdTimeout = time.Second
	}
	return &Client{addr: addr, dialTimeout: dialTimeout, cmdTimeout: cmdTimeout}
}

// StartTimer starts the timer.
func (c *Client) StartTimer(ctx context.Context) error {
	return c.send(ctx, "starttimer")
}

// Split advances the timer to its next checkpoint.
func (c *Client) Split(ctx context.Context) error {
	return c.send(ctx, "split")
}

// Reset returns the timer to its initial state.
func (c *Client) Reset(ctx context.Context) error {
	return c.send(ctx, "reset")
}

// PauseGameTime freezes the timer's game-time accumulation.
func (c *Client) PauseGameTime(ctx context.Context) error {
	return c.send(ctx, "pausegametime")
}

// ResumeGameTime unfreezes the timer's game-time accumulation.
func (c *Client) ResumeGameTime(ctx context.Context) error {
	return c.send(ctx, "unpausegametime")
}

// Phase queries the server for the current timer phase.
func (c *Client) Phase(ctx context.Context) (Phase, error) {
	reply, err := c.query(ctx, "getcurrenttimerphase")
	if err != nil {
		return "", err
	}
	switch phase := Phase(reply); phase {
	case PhaseNotRunning, PhaseRunning, PhaseEnded, PhasePaused:
		return phase, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, reply)
	}
}

// Close drops the connection if one is open.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropLocked()
}

func (c *Client) send(ctx context.Context, command string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLocked(ctx); err != nil {
		return err
	}
	if err := c.writeLocked(ctx, command); err != nil {
		_ = c.dropLocked()
		return err
	}
	return nil
}

func (c *Client) query(ctx context.Context, command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLocked(ctx); err != nil {
		return "", err
	}
	if err := c.writeLocked(ctx, command); err != nil {
		_ = c.dropLocked()
		return "", err
	}
	deadline := time.Now().Add(c.cmdTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		_ = c.dropLocked()
		return "", fmt.Errorf("set read deadline: %w", err)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		_ = c.dropLocked()
		return "", fmt.Errorf("read reply to %q: %w", command, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Client) ensureLocked(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect to LiveSplit server %s: %w", c.addr, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

func (c *Client) writeLocked(ctx context.Context, command string) error {
	deadline := time.Now().Add(c.cmdTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := c.conn.Write([]byte(command + "\r\n")); err != nil {
		return fmt.Errorf("send %q: %w", command, err)
	}
	return nil
}

func (c *Client) dropLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}
