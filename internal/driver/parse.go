package driver

import (
	"fortio.org/safecast"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// ParseResult is the syntax tree of one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Parsed  *parser.Result
	Bag     *diag.Bag
}

// Parse loads filePath and parses it; syntax errors land in Bag.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	res := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	bag.Sort()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Parsed:  res,
		Bag:     bag,
	}, nil
}
