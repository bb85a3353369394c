// Package splits classifies the progress of a single play-through and
// decides, poll by poll, which timer-control actions to emit.
//
// Progression is the milestone state machine, Progress layers the
// load-screen pause/resume overlay and deferred action handling on top of
// it, and Filter gates emitted actions against user preferences. The
// package never touches the timer or the game process itself; it consumes
// an injected telemetry source and leaves dispatch to the daemon.
package splits
