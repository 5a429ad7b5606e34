package lint

import (
	"sort"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// Source is the raw view of a file: text, significant tokens and comments.
type Source struct {
	File     *source.File
	Tokens   []token.Token // последний токен всегда EOF
	Comments []token.Trivia
}

// NewSource wraps a parse result.
func NewSource(res *parser.Result) *Source {
	return &Source{File: res.File, Tokens: res.Tokens, Comments: res.Comments}
}

// Text returns the whole file content.
func (s *Source) Text() []byte {
	return s.File.Content
}

// Slice returns the text covered by span.
func (s *Source) Slice(span source.Span) string {
	return s.File.Text(span)
}

// Line returns the 1-based line of off.
func (s *Source) Line(off uint32) uint32 {
	return s.File.LineOf(off)
}

// SameLine reports whether two offsets lie on one line.
func (s *Source) SameLine(a, b uint32) bool {
	return s.File.LineOf(a) == s.File.LineOf(b)
}

// Span builds a span of this file.
func (s *Source) Span(start, end uint32) source.Span {
	return source.Span{File: s.File.ID, Start: start, End: end}
}

// TokenIndex returns the index of the first token ending after off.
func (s *Source) TokenIndex(off uint32) int {
	return sort.Search(len(s.Tokens), func(i int) bool {
		return s.Tokens[i].Span.End > off
	})
}

// TokenAt returns the token starting exactly at off.
func (s *Source) TokenAt(off uint32) (int, bool) {
	i := s.TokenIndex(off)
	if i < len(s.Tokens) && s.Tokens[i].Span.Start == off {
		return i, true
	}
	return i, false
}

// FirstToken returns the index of the first token inside span.
func (s *Source) FirstToken(span source.Span) int {
	return sort.Search(len(s.Tokens), func(i int) bool {
		return s.Tokens[i].Span.Start >= span.Start
	})
}

// LastToken returns the index of the last token inside span, or -1.
func (s *Source) LastToken(span source.Span) int {
	i := sort.Search(len(s.Tokens), func(i int) bool {
		return s.Tokens[i].Span.End > span.End
	})
	if i == 0 {
		return -1
	}
	return i - 1
}

// Token returns the token at index i; out-of-range indexes yield EOF.
func (s *Source) Token(i int) token.Token {
	if i < 0 || i >= len(s.Tokens) {
		return token.Token{Kind: token.EOF}
	}
	return s.Tokens[i]
}

// TokensIn returns the tokens fully inside span.
func (s *Source) TokensIn(span source.Span) []token.Token {
	first, last := s.FirstToken(span), s.LastToken(span)
	if first > last {
		return nil
	}
	return s.Tokens[first : last+1]
}

// CommentsIn returns the comments that start inside [start, end).
func (s *Source) CommentsIn(start, end uint32) []token.Trivia {
	i := sort.Search(len(s.Comments), func(i int) bool {
		return s.Comments[i].Span.Start >= start
	})
	j := i
	for j < len(s.Comments) && s.Comments[j].Span.Start < end {
		j++
	}
	return s.Comments[i:j]
}
