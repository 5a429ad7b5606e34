// Package rules holds the built-in lint rules. Each rule is a value type
// implementing lint.Rule; per-file state lives in the closures installed by
// Listen.
package rules
