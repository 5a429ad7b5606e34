package fix

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func build(title string, kind diag.FixKind, app diag.FixApplicability, edits []diag.TextEdit, opts []Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Kind:          kind,
		Applicability: app,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at an empty span.
func InsertText(title string, at source.Span, text string, opts ...Option) diag.Fix {
	at = at.ZeroideToStart()
	return build(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe,
		[]diag.TextEdit{{Span: at, NewText: text}}, opts)
}

// DeleteSpan removes text covered by span; expect guards the removed text.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return build(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe,
		[]diag.TextEdit{{Span: span, OldText: expect}}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return build(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe,
		[]diag.TextEdit{{Span: span, NewText: newText, OldText: expect}}, opts)
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string, opts ...Option) diag.Fix {
	edits := []diag.TextEdit{
		{Span: span.ZeroideToStart(), NewText: prefix},
		{Span: span.ZeroideToEnd(), NewText: suffix},
	}
	return build(title, diag.FixKindRefactorRewrite, diag.FixApplicabilitySafeWithHeuristics, edits, opts)
}

// Rewrite bundles several edits of one file into a single fix.
func Rewrite(title string, edits []diag.TextEdit, opts ...Option) diag.Fix {
	return build(title, diag.FixKindRefactorRewrite, diag.FixApplicabilityAlwaysSafe, edits, opts)
}
