package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

// All returns one instance of every built-in rule in listing order.
func All() []lint.Rule {
	return []lint.Rule{
		NoDuplicateSuper{},
		PreferForOf{},
		NoUnnecessaryTypeAssertion{},
		NoForInArray{},
		NoDoubleSpace{},
		ImportSpacing{},
		NextLine{},
		NoTypeAssertionWhitespace{},
		NoBOM{},
		NoNullKeyword{},
		BooleanTrivia{},
		DebugAssert{},
		NoConstruct{},
		NoInOperator{},
		NoIncrementDecrement{},
		NoStringLiteral{},
	}
}

// NewRegistry registers All.
func NewRegistry() (*lint.Registry, error) {
	return lint.NewRegistry(All()...)
}
