package driver

import (
	"encoding/json"
	"fmt"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/observ"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

type timingPayload struct {
	Kind    string                `json:"kind"`
	RunID   string                `json:"run_id,omitempty"`
	Files   int                   `json:"files"`
	Cached  int                   `json:"cached,omitempty"`
	TotalMS float64               `json:"total_ms"`
	Phases  []observ.PhaseReport  `json:"phases"`
	Slowest []observ.SampleReport `json:"slowest,omitempty"`
}

// TimingDiagnostic packs the phase timings of res into an OBS7001 info
// diagnostic; the JSON payload is carried in its only note.
func TimingDiagnostic(res *Result) (diag.Diagnostic, bool) {
	if res == nil || res.Timer == nil {
		return diag.Diagnostic{}, false
	}
	report := res.Timer.Report()
	payload := timingPayload{
		Kind:    "lint",
		RunID:   res.RunID,
		Files:   len(res.Files),
		Cached:  res.CachedFiles(),
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
		Slowest: report.Slowest,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return diag.Diagnostic{}, false
	}
	var span source.Span
	if len(res.Files) > 0 {
		span.File = res.Files[0].FileID
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms, %d files", payload.Kind, payload.TotalMS, payload.Files)
	d := diag.New(diag.SevInfo, diag.ObsTimings, span, msg).WithNote(span, string(data))
	return d, true
}

// AppendTimings adds the timing diagnostic to the bag of res, even past the
// diagnostic limit.
func AppendTimings(res *Result) {
	d, ok := TimingDiagnostic(res)
	if !ok || res.Bag == nil {
		return
	}
	if res.Bag.Add(d) {
		return
	}
	overflow := diag.NewBag(0)
	overflow.Add(d)
	res.Bag.Merge(overflow)
}
