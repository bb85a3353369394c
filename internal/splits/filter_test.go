package splits_test

import (
	"testing"

	"starsplit/internal/splits"
)

func TestFilterAlwaysPassesRunControl(t *testing.T) {
	none := splits.Preferences{}

	if _, ok := splits.Filter(none, splits.ResetAndStart()); !ok {
		t.Fatal("ResetAndStart must pass with everything disabled")
	}
	if _, ok := splits.Filter(none, splits.Split(splits.Boss)); !ok {
		t.Fatal("the boss split must pass with everything disabled")
	}
}

func TestFilterGatesSplitsByCategory(t *testing.T) {
	prefs := splits.Preferences{Town: true}

	if _, ok := splits.Filter(prefs, splits.Split(splits.Mountain)); ok {
		t.Fatal("disabled mountain split should be filtered")
	}
	action, ok := splits.Filter(prefs, splits.Split(splits.Town))
	if !ok {
		t.Fatal("enabled town split should pass")
	}
	if action != splits.Split(splits.Town) {
		t.Fatalf("filter altered the action: %s", action)
	}
}

func TestFilterGatesPauseResumeByStopOnLoad(t *testing.T) {
	off := splits.Preferences{}
	if _, ok := splits.Filter(off, splits.Pause()); ok {
		t.Fatal("Pause should be filtered with stop-on-load off")
	}
	if _, ok := splits.Filter(off, splits.Resume()); ok {
		t.Fatal("Resume should be filtered with stop-on-load off")
	}

	on := splits.Preferences{StopOnLoad: true}
	if _, ok := splits.Filter(on, splits.Pause()); !ok {
		t.Fatal("Pause should pass with stop-on-load on")
	}
	if _, ok := splits.Filter(on, splits.Resume()); !ok {
		t.Fatal("Resume should pass with stop-on-load on")
	}
}
