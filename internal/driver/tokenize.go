package driver

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lexer"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// TokenizeResult is the token stream of one file.
type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Comments []token.Trivia
	Bag      *diag.Bag
}

// Tokenize loads path and lexes it to EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lexed := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()

	return &TokenizeResult{
		FileSet:  fs,
		File:     file,
		Tokens:   lexed.Tokens,
		Comments: lexed.Comments,
		Bag:      bag,
	}, nil
}
