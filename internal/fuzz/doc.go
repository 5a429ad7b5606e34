// Package fuzz holds fuzz targets for the lexer, the parser and the rule
// pipeline. Seeds come from the testkit fixtures and a few hand-picked
// inputs; run with
//
//	go test ./internal/fuzz -fuzz=FuzzLintPipeline
package fuzz
