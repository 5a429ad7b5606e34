// Package diag defines the diagnostic model shared by the lexer, the parser,
// the rule engine and the fix applier.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form. Rule codes live in the LNT range and their Title is the rule name.
//   - Message – human oriented text. Rule messages are part of the public
//     contract and must not change between releases.
//   - Primary span – the byte range the finding is anchored to.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional Fix records.
//
// # Fix suggestions
//
// Fix is data only: an ordered list of TextEdit values plus metadata (Kind,
// Applicability, IsPreferred). Edits of a single fix never overlap. OldText is
// an optional guard checked by internal/fix before an edit is spliced in.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. The lexer and parser report through
// BagReporter; the rule engine wraps its reporter in DedupReporter so that a
// rule reporting the same finding twice yields one diagnostic. Bag.Sort gives
// the canonical output order (file, start, end, severity, code, message).
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt
// and fix application in internal/fix.
package diag
