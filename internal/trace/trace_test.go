package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeRule, name, "", nil)
	}
	events := r.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("snapshot = %+v", events)
	}
}

func TestFailureBypassesScopeFilter(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	Point(r, ScopePass, "parse", "", nil)
	Failure(r, "rule:no-bom", "panic", map[string]string{"file": "a.ts"})
	events := r.Snapshot()
	if len(events) != 1 || events[0].Kind != KindFailure {
		t.Fatalf("events = %+v", events)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	span := Begin(st, ScopePass, "lint", 0)
	span.WithExtra("files", "3").End("ok")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "lint" || ev["detail"] != "ok" {
		t.Fatalf("end event = %v", ev)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should carry Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer not propagated")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ndjson: %v %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "ERROR", " phase ", "detail", "Debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
			continue
		}
		if l.String() != strings.ToLower(strings.TrimSpace(s)) {
			t.Errorf("ParseLevel(%q) = %s", s, l)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error")
	}
	if Level(42).ShouldEmit(ScopeDriver) {
		t.Error("unknown level emits")
	}
}

func TestStartSpanNests(t *testing.T) {
	r := NewRingTracer(8, LevelDetail)
	ctx := WithTracer(context.Background(), r)
	ctx, outer := StartSpan(ctx, ScopePass, "lint")
	_, inner := StartSpan(ctx, ScopeFile, "a.ts")
	inner.End("")
	outer.End("done")

	events := r.Snapshot()
	if len(events) != 4 {
		t.Fatalf("events = %+v", events)
	}
	if events[1].ParentID != outer.ID() || events[1].Name != "a.ts" {
		t.Errorf("inner begin = %+v", events[1])
	}
	if events[3].Kind != KindSpanEnd || events[3].Detail != "done" {
		t.Errorf("outer end = %+v", events[3])
	}

	// фильтрованный спан не меняет контекст
	ctx2, s := StartSpan(ctx, ScopeRule, "no-null-keyword")
	if s.ID() != 0 || CurrentSpan(ctx2).SpanID != outer.ID() {
		t.Errorf("filtered span leaked into context")
	}
	s.WithExtra("k", "v").End("")
}

func TestRingOf(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	var buf bytes.Buffer
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	if got, ok := RingOf(multi); !ok || got != ring {
		t.Fatal("ring not found behind multi tracer")
	}
	if _, ok := RingOf(Nop); ok {
		t.Fatal("nop has no ring")
	}

	Point(multi, ScopePass, "parse", "3 files", map[string]string{"b": "2", "a": "1"})
	if !strings.Contains(buf.String(), "parse (3 files) {a=1, b=2}") {
		t.Errorf("text = %q", buf.String())
	}
	var dump bytes.Buffer
	if err := ring.Dump(&dump, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dump.String(), "parse") {
		t.Errorf("dump = %q", dump.String())
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("both mode built %T", tr)
	}
	if tr, _ := New(Config{Level: LevelOff}); tr != Nop {
		t.Fatal("off level must build Nop")
	}
	if _, err := New(Config{Level: LevelPhase, Mode: 9}); err == nil {
		t.Fatal("unknown mode accepted")
	}
	if formatFor("run.ndjson") != FormatNDJSON || formatFor("-") != FormatText {
		t.Error("format detection")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(64, LevelError)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	events := r.Snapshot()
	if len(events) == 0 || events[0].Kind != KindHeartbeat || events[0].Detail != "#1" {
		t.Fatalf("events = %+v", events)
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Error("heartbeat on disabled tracer")
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()
}
