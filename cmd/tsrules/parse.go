package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diagfmt"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file",
	Short: "Parse a source file and print its syntax tree",
	Long:  `Parse analyzes a TypeScript or JavaScript file and prints the syntax tree the rules walk`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|sexpr|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		if err := printStderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
	}

	tree := result.Parsed.Tree
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTreePretty(out, tree, tree.Root)
	case "sexpr":
		err = diagfmt.FormatTreeSexpr(out, tree, tree.Root)
	case "json":
		err = diagfmt.FormatTreeJSON(out, tree, tree.Root, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return &exitCodeError{code: 1}
	}
	return nil
}

// printStderrDiagnostics prints lexer and parser findings of the debugging
// commands to stderr.
func printStderrDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor, err := readColorMode(colorFlag, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:   useColor,
		Context: 2,
	})
	return nil
}
