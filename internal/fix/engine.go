package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the patched buffers without writing them.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	// Content is the patched text; filled for dry runs.
	Content []byte
}

// FileConflict records a file left untouched because two selected fixes overlap.
type FileConflict struct {
	Path   string
	Err    *ConflictError
	FixIDs []string
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	Conflicts   []FileConflict
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts, and applies them.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	if err := applyCandidates(fs, selected, opts.DryRun, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates builds a list of candidate fixes from diagnostics and
// reports any skips encountered. Fixes without edits are skipped, as is every
// repeat of an already seen fix ID. A fix without an ID gets one made of the
// diagnostic code, file, start offset and fix index.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]struct{})

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			f.ID = FixID(d, idx)
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "duplicate fix id",
				})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{
				diag:  d,
				fix:   f,
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

// FixID returns the ID of the idx-th fix of d: its own ID when set, otherwise
// one made of the diagnostic code, file, start offset and fix index.
func FixID(d diag.Diagnostic, idx int) string {
	if id := d.Fixes[idx].ID; id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

// sortCandidates sorts the candidate slice in-place to produce a deterministic
// selection order used by the apply pipeline.
//
// The sort keys, in precedence order, are: file (Primary.File), span start
// (Primary.Start), span end (Primary.End), candidate insertion order
// (candidate.order), diagnostic code (diag.Code), fix preference (IsPreferred,
// preferred first), fix ID, and finally fix Title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred && !candidates[j].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability.String()),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		var fallback *candidate
		for i := range candidates {
			if candidates[i].fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{candidates[i]}, nil
			}
			if fallback == nil {
				fallback = &candidates[i]
			}
		}
		if fallback != nil {
			return []candidate{*fallback}, nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// applyCandidates группирует выбранные fixes по файлам и применяет их через ApplyText.
// Файл с конфликтом или несовпавшим OldText не записывается целиком.
func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool, result *ApplyResult) error {
	byFile := make(map[source.FileID][]candidate)
	files := make([]source.FileID, 0)
	for _, cand := range selected {
		fileID, ok := fixFile(cand.fix)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: "fix spans several files",
			})
			continue
		}
		if _, seen := byFile[fileID]; !seen {
			files = append(files, fileID)
		}
		byFile[fileID] = append(byFile[fileID], cand)
	}
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	baseDir := fs.BaseDir()
	for _, fileID := range files {
		cands := byFile[fileID]
		file := fs.Get(fileID)
		if file == nil {
			skipAll(result, cands, "target file is unknown")
			continue
		}
		if file.Flags&source.FileVirtual != 0 && !dryRun {
			skipAll(result, cands, "target file is virtual")
			continue
		}

		fixes := make([]diag.Fix, len(cands))
		edits := 0
		for i, cand := range cands {
			fixes[i] = cand.fix
			edits += len(cand.fix.Edits)
		}
		patched, err := ApplyText(file.Content, fixes)
		if err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				ids := make([]string, len(cands))
				for i, cand := range cands {
					ids[i] = cand.fix.ID
				}
				result.Conflicts = append(result.Conflicts, FileConflict{
					Path:   file.FormatPath("relative", baseDir),
					Err:    conflict,
					FixIDs: ids,
				})
				continue
			}
			skipAll(result, cands, err.Error())
			continue
		}

		change := FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: edits,
		}
		if dryRun {
			change.Content = patched
		} else if err := writePreservingMode(file.Path, patched); err != nil {
			return err
		}
		result.FileChanges = append(result.FileChanges, change)

		for _, cand := range cands {
			result.Applied = append(result.Applied, AppliedFix{
				ID:            cand.fix.ID,
				Title:         cand.fix.Title,
				Code:          cand.diag.Code,
				Message:       cand.diag.Message,
				Applicability: cand.fix.Applicability,
				PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
				EditCount:     len(cand.fix.Edits),
			})
		}
	}

	sort.SliceStable(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	return nil
}

func fixFile(f diag.Fix) (source.FileID, bool) {
	id := f.Edits[0].Span.File
	for _, e := range f.Edits[1:] {
		if e.Span.File != id {
			return 0, false
		}
	}
	return id, true
}

func skipAll(result *ApplyResult, cands []candidate, reason string) {
	for _, cand := range cands {
		result.Skipped = append(result.Skipped, SkippedFix{
			ID:     cand.fix.ID,
			Title:  cand.fix.Title,
			Reason: reason,
		})
	}
}

func writePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil {
		return ""
	}
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
