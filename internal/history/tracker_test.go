package history

import (
	"testing"
	"time"
)

var base = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

func TestSnapshotDefaultsToNeverPlayed(t *testing.T) {
	tr := NewTracker()

	counters := tr.Snapshot(base)
	if c, ok := counters["unknown"]; ok || c.HasPlayed {
		t.Errorf("unknown playlist counters = %+v, want absent", c)
	}
}

func TestObservePlayResetsChosenAdvancesOthers(t *testing.T) {
	tr := NewTracker()
	tr.ObservePlay("a", base)
	tr.ObservePlay("b", base.Add(3*time.Minute))
	tr.ObservePlay("b", base.Add(7*time.Minute))

	counters := tr.Snapshot(base.Add(10 * time.Minute))

	a := counters["a"]
	if !a.HasPlayed || a.SongsSinceLastPlay != 2 {
		t.Errorf("a counters = %+v, want 2 songs since last play", a)
	}
	if a.MinutesSinceLastPlay != 10 {
		t.Errorf("a minutes since = %d, want 10", a.MinutesSinceLastPlay)
	}

	b := counters["b"]
	if b.SongsSinceLastPlay != 0 {
		t.Errorf("b songs since = %d, want 0 (just played)", b.SongsSinceLastPlay)
	}
	if b.MinutesSinceLastPlay != 3 {
		t.Errorf("b minutes since = %d, want 3", b.MinutesSinceLastPlay)
	}
}

func TestLoopConsumedRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.MarkLoopConsumed("loop")

	if !tr.Snapshot(base)["loop"].LoopConsumed {
		t.Error("loop playlist should read as consumed")
	}

	tr.ReArm("loop")
	if tr.Snapshot(base)["loop"].LoopConsumed {
		t.Error("re-armed playlist should not read as consumed")
	}
}

func TestForgetDropsStaleEntries(t *testing.T) {
	tr := NewTracker()
	tr.ObservePlay("keep", base)
	tr.ObservePlay("drop", base)

	tr.Forget(map[string]bool{"keep": true})

	counters := tr.Snapshot(base.Add(time.Minute))
	if _, ok := counters["drop"]; ok {
		t.Error("forgotten playlist should not be tracked")
	}
	if _, ok := counters["keep"]; !ok {
		t.Error("kept playlist should remain tracked")
	}
}
