// Package livesplit is a minimal TCP client for the LiveSplit Server
// protocol: newline-terminated commands, with replies only for queries.
package livesplit
