// Package watch provides a generic edge detector over periodic,
// possibly-missing readings of a single value.
package watch
