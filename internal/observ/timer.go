// Package observ measures how long the phases of a lint run take.
package observ

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultSlowest is how many per-file samples a Timer keeps by default.
const DefaultSlowest = 5

// Phase is one timed stage of a run: discovery, parsing, linting and so on.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Sample is the time spent on a single file inside a phase.
type Sample struct {
	Phase string
	File  string
	Dur   time.Duration
}

// Timer records run phases and the slowest files. Phases are opened and
// closed by the driver goroutine; Sample may be called from lint workers.
type Timer struct {
	mu      sync.Mutex
	phases  []Phase
	samples []Sample
	keep    int
}

// NewTimer creates a Timer keeping DefaultSlowest file samples.
func NewTimer() *Timer { return NewTimerKeeping(DefaultSlowest) }

// NewTimerKeeping creates a Timer keeping at most keep file samples.
func NewTimerKeeping(keep int) *Timer {
	return &Timer{phases: make([]Phase, 0, 8), keep: max(keep, 0)}
}

// Begin opens a phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase idx with an optional note.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Sample records d spent on file during phase. Only the slowest samples
// survive.
func (t *Timer) Sample(phase, file string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.keep == 0 {
		return
	}
	s := Sample{Phase: phase, File: file, Dur: d}
	i := sort.Search(len(t.samples), func(i int) bool { return t.samples[i].Dur < d })
	if i >= t.keep {
		return
	}
	t.samples = append(t.samples, Sample{})
	copy(t.samples[i+1:], t.samples[i:])
	t.samples[i] = s
	if len(t.samples) > t.keep {
		t.samples = t.samples[:t.keep]
	}
}

// Summary renders the phases and the slowest files as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	if len(report.Slowest) > 0 {
		b.WriteString("slowest files:\n")
		for _, s := range report.Slowest {
			fmt.Fprintf(&b, "  %7.2f ms  %-8s %s\n", s.DurationMS, s.Phase, s.File)
		}
	}
	return b.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// SampleReport is the serialized form of a Sample.
type SampleReport struct {
	Phase      string  `json:"phase"`
	File       string  `json:"file"`
	DurationMS float64 `json:"duration_ms"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64        `json:"total_ms"`
	Phases  []PhaseReport  `json:"phases"`
	Slowest []SampleReport `json:"slowest,omitempty"`
}

// Report snapshots the timer. Total is the sum of the phase durations.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var report Report
	var total time.Duration
	for _, phase := range t.phases {
		total += phase.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	for _, s := range t.samples {
		report.Slowest = append(report.Slowest, SampleReport{
			Phase:      s.Phase,
			File:       s.File,
			DurationMS: durationToMillis(s.Dur),
		})
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
