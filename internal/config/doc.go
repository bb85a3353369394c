// Package config loads, normalizes, and validates the TOML configuration
// shared by the starsplit CLI and daemon.
package config
