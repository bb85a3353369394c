package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"starsplit/internal/daemonctl"
	"starsplit/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the autosplit daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonLaunchOptions(ctx),
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.Launched {
				fmt.Fprintln(stdout, "Daemon not running, launching...")
			}

			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintln(stdout, "Daemon started")
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			case daemonctl.StartStateRequested:
				if strings.TrimSpace(result.Message) != "" {
					fmt.Fprintln(stdout, result.Message)
					return nil
				}
				fmt.Fprintln(stdout, "Start request sent")
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the autosplit daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			err := daemonctl.StopDaemon(ctx.socketPath(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				printStatus(stdout, status, shouldColorize(stdout))
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

func printStatus(stdout io.Writer, status *ipc.StatusResponse, colorize bool) {
	for _, line := range renderSectionHeader("Daemon", colorize) {
		fmt.Fprintln(stdout, line)
	}
	runningKind := statusWarn
	runningMsg := "stopped"
	if status.Running {
		runningKind = statusOK
		runningMsg = fmt.Sprintf("running (pid %d)", status.DaemonPID)
	}
	fmt.Fprintln(stdout, renderStatusLine("Engine", runningKind, runningMsg, colorize))
	fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, status.SocketPath, colorize))
	fmt.Fprintln(stdout, renderStatusLine("Settings DB", statusInfo, status.SettingsDBPath, colorize))
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Session", colorize) {
		fmt.Fprintln(stdout, line)
	}
	if status.Attached {
		fmt.Fprintln(stdout, renderStatusLine("Game", statusOK, fmt.Sprintf("attached (pid %d)", status.GamePID), colorize))
		fmt.Fprintln(stdout, renderStatusLine("Session", statusInfo, status.SessionID, colorize))
		fmt.Fprintln(stdout, renderStatusLine("Progress", statusInfo, status.State, colorize))
	} else {
		fmt.Fprintln(stdout, renderStatusLine("Game", statusWarn, "not attached", colorize))
	}
	fmt.Fprintln(stdout)

	rows := [][]string{
		{"Resets", strconv.FormatUint(status.Counters.Resets, 10)},
		{"Splits", strconv.FormatUint(status.Counters.Splits, 10)},
		{"Pauses", strconv.FormatUint(status.Counters.Pauses, 10)},
		{"Resumes", strconv.FormatUint(status.Counters.Resumes, 10)},
		{"Filtered", strconv.FormatUint(status.Counters.Filtered, 10)},
	}
	fmt.Fprint(stdout, renderTable([]string{"Action", "Count"}, rows, 1))
	fmt.Fprintln(stdout)
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}

func daemonLaunchOptions(ctx *commandContext) daemonctl.LaunchOptions {
	opts := daemonctl.LaunchOptions{}
	if ctx.socketFlag != nil {
		if socket := strings.TrimSpace(*ctx.socketFlag); socket != "" {
			opts.SocketPath = socket
		}
	}
	if ctx.configFlag != nil {
		if config := strings.TrimSpace(*ctx.configFlag); config != "" {
			opts.ConfigPath = config
		}
	}
	return opts
}
