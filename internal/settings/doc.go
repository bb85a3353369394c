// Package settings persists split preferences in SQLite so the operator
// can change them while the daemon runs.
package settings
