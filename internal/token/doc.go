// Package token defines lexical token kinds and trivia for the TypeScript subset.
// Invariants:
//   - Token.Text is the exact source text of Token.Span.
//   - Only reserved words get keyword kinds; contextual words (let, of, as,
//     type, interface, async, from, ...) are Ident and are recognised by the parser.
//   - Comments and whitespace never appear in the token stream; they are
//     attached to the following token as Leading trivia (EOF included).
//   - '>' is never combined with a following '>' or '='.
package token
