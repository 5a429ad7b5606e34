package diagfmt

import (
	"io"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Short prints one "<SEV> <CODE> <path>:<line>:<col> <message>" line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, false)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
