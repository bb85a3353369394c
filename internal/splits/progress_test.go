package splits_test

import (
	"testing"

	"starsplit/internal/splits"
)

// drain polls Act until it yields nothing, collecting the actions in order.
func drain(p *splits.Progress, src fakeSource) []splits.Action {
	var actions []splits.Action
	for {
		action, ok := p.Act(src)
		if !ok {
			return actions
		}
		actions = append(actions, action)
	}
}

func expectActions(t *testing.T, got []splits.Action, want ...splits.Action) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("action %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLoadEdgesBracketAndSplit(t *testing.T) {
	p := splits.NewProgress()

	// Start the run with the load flag settled low.
	got := drain(p, fakeSource{playTime: u64(0), loading: boolp(false)})
	expectActions(t, got, splits.Resume(), splits.ResetAndStart())

	edge := func() ([]splits.Action, []splits.Action) {
		down := drain(p, fakeSource{loading: boolp(true)})
		up := drain(p, fakeSource{loading: boolp(false)})
		return down, up
	}

	// Tutorial exit: no split.
	down, up := edge()
	expectActions(t, down, splits.Pause())
	expectActions(t, up, splits.Resume())

	// Second load: the mountain split is decided mid-load and surfaces
	// after the Resume.
	down, up = edge()
	expectActions(t, down, splits.Pause())
	expectActions(t, up, splits.Resume(), splits.Split(splits.Mountain))

	down, up = edge()
	expectActions(t, down, splits.Pause())
	expectActions(t, up, splits.Resume(), splits.Split(splits.Town))

	// Fourth load transitions into the dungeon without a split.
	down, up = edge()
	expectActions(t, down, splits.Pause())
	expectActions(t, up, splits.Resume())
	if got := p.State(); got != "in_dungeon" {
		t.Fatalf("state = %s, want in_dungeon", got)
	}
}

func TestSteadyLoadingEmitsNothing(t *testing.T) {
	p := splits.NewProgress()
	drain(p, fakeSource{playTime: u64(0), loading: boolp(false)})

	got := drain(p, fakeSource{loading: boolp(true)})
	expectActions(t, got, splits.Pause())

	// The flag holding high is not a new edge.
	got = drain(p, fakeSource{loading: boolp(true)})
	expectActions(t, got)
}

func TestAbsentLoadingFlagFallsThrough(t *testing.T) {
	p := splits.NewProgress()

	// No loading reading at all: the inner automaton still advances.
	got := drain(p, fakeSource{playTime: u64(0)})
	expectActions(t, got, splits.ResetAndStart())
}

func TestResetSkippedWhileIdle(t *testing.T) {
	p := splits.NewProgress()
	p.Reset()

	// The play-time sentinel must survive an idle reset: an established
	// save still never starts a run.
	got := drain(p, fakeSource{playTime: u64(3600)})
	expectActions(t, got)
	got = drain(p, fakeSource{playTime: u64(0)})
	expectActions(t, got, splits.ResetAndStart())
}

func TestResetDiscardsRunProgress(t *testing.T) {
	p := splits.NewProgress()
	drain(p, fakeSource{playTime: u64(0)})
	if p.Idle() {
		t.Fatal("progress should be mid-run")
	}

	p.Reset()
	if !p.Idle() {
		t.Fatalf("reset should return to not_running, state = %s", p.State())
	}

	// A fresh save detected after the reset starts a new run.
	got := drain(p, fakeSource{playTime: u64(0)})
	expectActions(t, got, splits.ResetAndStart())
}
