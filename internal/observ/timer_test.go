package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerAccumulatesByName(t *testing.T) {
	tm := NewTimer()
	tm.Add("parse", 2*time.Millisecond)
	tm.Add("infer", time.Millisecond)
	tm.Add("parse", 3*time.Millisecond)
	tm.Note("parse", "hits=1")

	phases := tm.Phases()
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if phases[0].Name != "parse" || phases[0].Count != 2 || phases[0].Dur != 5*time.Millisecond {
		t.Fatalf("unexpected parse phase: %+v", phases[0])
	}

	rep := tm.Report()
	if rep.TotalMS != 6 {
		t.Fatalf("total = %v", rep.TotalMS)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "// hits=1") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
}

func TestTrackAndNil(t *testing.T) {
	tm := NewTimer()
	tm.Track("resolve")()
	if tm.Phases()[0].Count != 1 {
		t.Fatal("track must record one occurrence")
	}

	var nilTimer *Timer
	nilTimer.Track("x")()
	nilTimer.Add("x", time.Second)
	if nilTimer.Report().Phases != nil {
		t.Fatal("nil timer must report nothing")
	}
}
