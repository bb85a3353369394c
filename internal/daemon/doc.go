// Package daemon runs the autosplit engine: it watches for the game
// process, attaches a telemetry reader, and drives the timer from the
// split progression at the configured tick rate. A file lock keeps the
// daemon single-instance per state directory.
package daemon
