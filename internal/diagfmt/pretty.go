package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	loc, gutter     *color.Color
	caret, note     *color.Color
	fix, added      *color.Color
	removed         *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		loc:     color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgGreen, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgMagenta),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.loc, p.gutter, p.caret, p.note, p.fix, p.added, p.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyDiagnostic(w, d, fs, opts, pal)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}

func prettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := spanPath(d.Primary, fs, opts.PathMode)

	header := fmt.Sprintf("%s:%d:%d:", path, start.Line, start.Col)
	fmt.Fprintf(w, "%s %s %s: %s", pal.loc.Sprint(header), pal.severity(d.Severity).Sprint(d.Severity.String()), d.Code.ID(), d.Message)
	if d.Code.IsLint() {
		fmt.Fprintf(w, " [%s]", d.Code.Title())
	}
	fmt.Fprintln(w)

	if f != nil {
		writeContext(w, f, d.Primary, opts, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			npos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), spanPath(n.Span, fs, opts.PathMode), npos.Line, npos.Col, n.Msg)
		}
	}

	if opts.ShowFixes || opts.ShowPreview {
		for i, fx := range d.Fixes {
			writeFix(w, d, i, fx, fs, opts, pal)
		}
	}
}

// writeContext prints the line of span plus opts.Context lines around it,
// underlining the span on its first line.
func writeContext(w io.Writer, f *source.File, span source.Span, opts PrettyOpts, pal palette) {
	startLine := f.LineOf(span.Start)
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if startLine > ctx {
		first = startLine - ctx
	}
	last := min(startLine+ctx, uint32(f.LineCount())) // #nosec G115

	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := clipLine(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != startLine {
			continue
		}
		lineStart := f.LineStart(ln)
		full := f.GetLine(ln)
		from := int(span.Start - lineStart)
		to := min(int(span.End-lineStart), len(full))
		from = min(from, len(full))
		pad := runewidth.StringWidth(full[:from])
		width := 1
		if to > from {
			width = max(runewidth.StringWidth(full[from:to]), 1)
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	}
}

func clipLine(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}

func writeFix(w io.Writer, d diag.Diagnostic, idx int, fx diag.Fix, fs *source.FileSet, opts PrettyOpts, pal palette) {
	meta := []string{fx.Kind.String(), fx.Applicability.String()}
	if fx.IsPreferred {
		meta = append(meta, "preferred")
	}
	fmt.Fprintf(w, "  %s %s (%s) id=%s\n", pal.fix.Sprintf("fix #%d:", idx+1), fx.Title, strings.Join(meta, ", "), fix.FixID(d, idx))
	for _, edit := range fx.Edits {
		if opts.ShowFixes {
			s, e := fs.Resolve(edit.Span)
			fmt.Fprintf(w, "    edit %s:%d:%d-%d:%d apply=%q\n", spanPath(edit.Span, fs, opts.PathMode), s.Line, s.Col, e.Line, e.Col, edit.NewText)
		}
		if !opts.ShowPreview {
			continue
		}
		preview, err := buildFixEditPreview(fs, edit)
		if err != nil {
			fmt.Fprintf(w, "    preview unavailable: %v\n", err)
			continue
		}
		fmt.Fprintln(w, "    preview:")
		for _, line := range preview.before {
			fmt.Fprintf(w, "      %s\n", pal.removed.Sprint("- "+line))
		}
		for _, line := range preview.after {
			fmt.Fprintf(w, "      %s\n", pal.added.Sprint("+ "+line))
		}
	}
}

// Summary prints the closing "N errors, M warnings" line.
func Summary(w io.Writer, bag *diag.Bag, files int, colorOn bool) {
	pal := newPalette(colorOn)
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	parts := []string{
		pal.err.Sprint(plural(errs, "error")),
		pal.warn.Sprint(plural(warns, "warning")),
	}
	if infos > 0 {
		parts = append(parts, pal.info.Sprint(plural(infos, "info")))
	}
	fmt.Fprintf(w, "%s in %s\n", strings.Join(parts, ", "), plural(files, "file"))
}

func plural(n int, word string) string {
	if n == 1 || word == "info" {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
