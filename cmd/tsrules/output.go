package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/config"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diagfmt"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/version"
)

// outputOptions собирает флаги, общие для lint и fix.
type outputOptions struct {
	format    string
	pathMode  diagfmt.PathMode
	color     bool
	withNotes bool
	suggest   bool
	preview   bool
	quiet     bool
	timings   bool
	args      []string
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "preview fixes as before/after lines")
}

func readOutputOptions(cmd *cobra.Command, args []string) (outputOptions, error) {
	var opts outputOptions
	var err error
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "short", "json", "sarif":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}

	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return opts, fmt.Errorf("unknown path mode: %s", pathModeStr)
	}
	opts.pathMode = mode

	if opts.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return opts, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if opts.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return opts, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.color, err = readColorMode(colorFlag, os.Stdout); err != nil {
		return opts, err
	}
	opts.args = args
	return opts, nil
}

// writeDiagnostics renders the bag of res in the chosen format.
func writeDiagnostics(w io.Writer, res *driver.Result, opts outputOptions) error {
	showFixes := opts.suggest || opts.preview
	switch opts.format {
	case "pretty":
		diagfmt.Pretty(w, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       opts.color,
			Context:     2,
			PathMode:    opts.pathMode,
			ShowNotes:   opts.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: opts.preview,
		})
		if !opts.quiet {
			diagfmt.Summary(w, res.Bag, len(res.Files), opts.color)
		}
		return nil
	case "short":
		return diagfmt.Short(w, res.Bag, res.FileSet)
	case "json":
		return diagfmt.JSON(w, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  opts.preview,
			RunID:            res.RunID,
		})
	case "sarif":
		return diagfmt.Sarif(w, res.Bag, res.FileSet, sarifMeta(res.Enabled, opts.args))
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}

func sarifMeta(enabled []lint.Enabled, args []string) diagfmt.SarifRunMeta {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "tsrules",
		ToolVersion:    version.Version,
		InvocationArgs: args,
	}
	for _, en := range enabled {
		m := en.Rule.Meta()
		meta.Rules = append(meta.Rules, diagfmt.SarifRule{
			ID:          m.Code.ID(),
			Name:        m.Name,
			Description: m.Description,
			Level:       diagfmt.SarifLevel(en.Severity),
		})
	}
	return meta
}

// loadConfig reads --config, or discovers the project config from the
// first target.
func loadConfig(cmd *cobra.Command, targets []string) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	start := "."
	if len(targets) > 0 {
		start = targets[0]
	}
	return config.Discover(start)
}

// lintExitCode is 1 when the bag holds an error-severity diagnostic.
func lintExitCode(res *driver.Result) int {
	for _, d := range res.Diagnostics() {
		if d.Severity == diag.SevError {
			return 1
		}
	}
	return 0
}
