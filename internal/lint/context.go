package lint

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/semantic"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// File is everything a rule may look at for one file.
type File struct {
	Source *Source
	Tree   *ast.Tree
	Scopes *scope.Manager
	Types  semantic.Bridge
}

// Context is handed to the listeners of one rule. Its node, ancestor and
// scope accessors reflect the dispatcher position at call time.
type Context struct {
	file     *File
	walk     *walker
	meta     Meta
	severity diag.Severity
	options  []string
	reports  int
}

// Rule returns the metadata of the rule the context belongs to.
func (c *Context) Rule() Meta { return c.meta }

// Node returns the node being visited.
func (c *Context) Node() ast.NodeID {
	if c.walk == nil {
		return ast.NoNodeID
	}
	return c.walk.current
}

// Tree returns the syntax tree.
func (c *Context) Tree() *ast.Tree { return c.file.Tree }

// Source returns the token view of the file.
func (c *Context) Source() *Source { return c.file.Source }

// Scopes returns the scope manager of the file.
func (c *Context) Scopes() *scope.Manager { return c.file.Scopes }

// Types returns the semantic bridge; its queries are absent when the file
// is not part of a checked program.
func (c *Context) Types() semantic.Bridge { return c.file.Types }

// Ancestors returns the ancestors of the current node, outermost first.
// The returned slice must not be modified.
func (c *Context) Ancestors() []ast.NodeID {
	if c.walk == nil {
		return nil
	}
	return c.walk.stack
}

// Parent returns the direct parent of the current node.
func (c *Context) Parent() ast.NodeID {
	stack := c.Ancestors()
	if n := len(stack); n > 0 {
		return stack[n-1]
	}
	return ast.NoNodeID
}

// Closest returns the innermost ancestor whose kind is one of kinds.
func (c *Context) Closest(kinds ...ast.Kind) ast.NodeID {
	stack := c.Ancestors()
	for i := len(stack) - 1; i >= 0; i-- {
		k := c.file.Tree.Kind(stack[i])
		for _, want := range kinds {
			if k == want {
				return stack[i]
			}
		}
	}
	return ast.NoNodeID
}

// Scope returns the innermost scope at the current node.
func (c *Context) Scope() scope.ScopeID {
	if c.walk == nil {
		if c.file.Scopes != nil {
			return c.file.Scopes.Root()
		}
		return scope.NoScopeID
	}
	return c.walk.scope
}

// Text returns the source text of node.
func (c *Context) Text(node ast.NodeID) string {
	return c.file.Source.Slice(c.Tree().Span(node))
}

// Report records a diagnostic for span.
func (c *Context) Report(span source.Span, msg string, fixes ...diag.Fix) {
	c.reports++
	c.walk.report(diag.Diagnostic{
		Severity: c.severity,
		Code:     c.meta.Code,
		Message:  msg,
		Primary:  span,
		Fixes:    fixes,
	})
}

// ReportNode records a diagnostic spanning node.
func (c *Context) ReportNode(node ast.NodeID, msg string, fixes ...diag.Fix) {
	c.Report(c.Tree().Span(node), msg, fixes...)
}

// ReportRange records a diagnostic for [start, end) of the current file.
func (c *Context) ReportRange(start, end uint32, msg string, fixes ...diag.Fix) {
	c.Report(c.file.Source.Span(start, end), msg, fixes...)
}

// NewFile assembles the rule view of a parsed file. When scopes is nil the
// scope graph is built here.
func NewFile(res *parser.Result, scopes *scope.Manager, types semantic.Bridge) *File {
	if scopes == nil {
		scopes = scope.Analyze(res.Tree)
	}
	return &File{
		Source: NewSource(res),
		Tree:   res.Tree,
		Scopes: scopes,
		Types:  types,
	}
}
