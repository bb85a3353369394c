package daemon

import (
	"context"

	"starsplit/internal/livesplit"
)

// Timer is the slice of the LiveSplit client the daemon drives. Pause and
// resume act on game time, matching the convention that load screens
// freeze game time rather than real time.
type Timer interface {
	Phase(ctx context.Context) (livesplit.Phase, error)
	StartTimer(ctx context.Context) error
	Split(ctx context.Context) error
	Reset(ctx context.Context) error
	PauseGameTime(ctx context.Context) error
	ResumeGameTime(ctx context.Context) error
}
