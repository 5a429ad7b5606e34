package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")
	tm.Begin("lint")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 files" {
		t.Errorf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[1].DurationMS != 0 {
		t.Errorf("open phase has duration %v", report.Phases[1].DurationMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:\n", "  parse", "// 3 files", "  total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary lacks %q:\n%s", want, sum)
		}
	}
	if strings.Contains(sum, "slowest files") {
		t.Errorf("summary lists files without samples:\n%s", sum)
	}
}

func TestTimerEmptyReport(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 || len(report.Slowest) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestTimerKeepsSlowest(t *testing.T) {
	tm := NewTimerKeeping(2)
	tm.Sample("lint", "a.ts", 3*time.Millisecond)
	tm.Sample("lint", "b.ts", 1*time.Millisecond)
	tm.Sample("lint", "c.ts", 5*time.Millisecond)
	tm.Sample("lint", "d.ts", 2*time.Millisecond)

	got := tm.Report().Slowest
	if len(got) != 2 || got[0].File != "c.ts" || got[1].File != "a.ts" {
		t.Fatalf("slowest = %+v", got)
	}
	if got[0].DurationMS != 5 {
		t.Errorf("duration = %v", got[0].DurationMS)
	}
	if !strings.Contains(tm.Summary(), "slowest files:\n") {
		t.Errorf("summary:\n%s", tm.Summary())
	}

	none := NewTimerKeeping(0)
	none.Sample("lint", "a.ts", time.Second)
	if len(none.Report().Slowest) != 0 {
		t.Error("timer keeping zero samples recorded one")
	}
}

func TestTimerSampleConcurrent(t *testing.T) {
	tm := NewTimerKeeping(3)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Sample("lint", "f.ts", time.Duration(i)*time.Microsecond)
		}()
	}
	wg.Wait()
	got := tm.Report().Slowest
	if len(got) != 3 || got[0].DurationMS < got[1].DurationMS || got[1].DurationMS < got[2].DurationMS {
		t.Errorf("slowest = %+v", got)
	}
}
