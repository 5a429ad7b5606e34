package lint

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
)

// Category groups rules for listings.
type Category uint8

const (
	CategoryControlFlow Category = iota + 1
	CategoryTypes
	CategoryLexical
	CategorySyntax
)

func (c Category) String() string {
	switch c {
	case CategoryControlFlow:
		return "control-flow"
	case CategoryTypes:
		return "types"
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	}
	return "unknown"
}

// Meta describes a rule.
type Meta struct {
	Name        string
	Code        diag.Code
	Description string
	Category    Category
	Severity    diag.Severity
	// RequiresTypes rules are skipped for files outside a checked program.
	RequiresTypes bool
	Fixable       bool
	// Options lists the option values the rule understands.
	Options []string
}

// Rule is one independent analysis. Listen is called once per file and
// installs that file's listeners.
type Rule interface {
	Meta() Meta
	Listen(r *Registrar)
}

// Listener is invoked for a node of the kind it was registered for.
type Listener func(c *Context, node ast.NodeID)

// Registrar collects the listeners of one rule for one file.
type Registrar struct {
	table *Table
	ctx   *Context
}

// On registers fn for entering nodes of kind.
func (r *Registrar) On(kind ast.Kind, fn Listener) {
	r.table.add(false, kind, r.ctx, fn)
}

// OnExit registers fn for leaving nodes of kind.
func (r *Registrar) OnExit(kind ast.Kind, fn Listener) {
	r.table.add(true, kind, r.ctx, fn)
}

// Options returns the configured options of the rule.
func (r *Registrar) Options() []string {
	return r.ctx.options
}

// HasOption reports whether opt is among the configured options.
func (r *Registrar) HasOption(opt string) bool {
	for _, o := range r.ctx.options {
		if o == opt {
			return true
		}
	}
	return false
}

// Context returns the context listeners of this rule receive.
func (r *Registrar) Context() *Context {
	return r.ctx
}
