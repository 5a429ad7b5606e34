package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
)

func TestApplyEvent(t *testing.T) {
	m := newProgressModel("lint", []string{"a.ts", "b.ts"}, nil)

	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageLint, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.ts", Stage: driver.StageLint, Status: driver.StatusCached})
	if m.items[0].status != "done" || m.items[1].status != "cached" {
		t.Fatalf("statuses = %q %q", m.items[0].status, m.items[1].status)
	}
	if got := m.percent(); got != 1 {
		t.Errorf("percent = %v", got)
	}

	// итоговый статус не перетирается поздними событиями
	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "done" {
		t.Errorf("final status overwritten: %q", m.items[0].status)
	}

	m.applyEvent(driver.Event{Stage: driver.StageSemantic, Status: driver.StatusWorking})
	if m.stageLabel != "checking" {
		t.Errorf("stage label = %q", m.stageLabel)
	}
	m.applyEvent(driver.Event{File: "unknown.ts", Stage: driver.StageLint, Status: driver.StatusDone})
}

func TestPercentPartial(t *testing.T) {
	m := newProgressModel("lint", []string{"a.ts", "b.ts"}, nil)
	m.applyEvent(driver.Event{File: "a.ts", Stage: driver.StageParse, Status: driver.StatusError})
	if got := m.percent(); got != 0.5 {
		t.Errorf("percent = %v", got)
	}
}

func TestView(t *testing.T) {
	m := newProgressModel("lint", []string{"src/a.ts"}, nil)
	m.applyEvent(driver.Event{File: "src/a.ts", Stage: driver.StageLint, Status: driver.StatusWorking})
	view := m.View()
	if !strings.Contains(view, "linting") || !strings.Contains(view, "src/a.ts") {
		t.Fatalf("view:\n%s", view)
	}
	m.done = true
	if !strings.HasPrefix(stripANSI(m.View()), "done: lint") {
		t.Errorf("done view:\n%s", m.View())
	}
	if newProgressModel("empty", nil, nil).View() != "" {
		t.Error("empty model must render nothing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefgh", 4); got != "a..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("src/components/x.ts", 12); runewidth.StringWidth(got) != 12 {
		t.Errorf("truncate = %q, want 12 columns", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				esc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
