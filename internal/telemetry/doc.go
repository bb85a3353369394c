// Package telemetry defines the contract for best-effort readings of the
// game's session counters and implements it over raw process memory using
// a per-build pointer profile.
package telemetry
