// Package main hosts the starsplit CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into IPC
// calls against the daemon: lifecycle control, split toggle management, and
// configuration scaffolding. It centralizes configuration resolution and
// socket discovery so subcommands stay declarative.
package main
