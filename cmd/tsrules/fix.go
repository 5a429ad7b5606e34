package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file|directory]...",
	Short: "Apply available fixes to source files or directories",
	Long:  "Lint the targets, surface available fixes, and apply them according to the chosen strategy.",
	RunE:  runFix,
}

func init() {
	addRunFlags(fixCmd)
	fixCmd.Flags().Bool("all", false, "apply all non-conflicting fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "print the patched files instead of writing them")
}

func readApplyOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	return selectApplyMode(applyAll, applyOnceFlag, targetID, dryRun)
}

func selectApplyMode(applyAll, applyOnce bool, targetID string, dryRun bool) (fix.ApplyOptions, error) {
	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	return fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun}, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	apply, err := readApplyOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := readRunOptions(cmd, args)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	res, applyErr := driver.Fix(cmd.Context(), args, opts, apply)
	if res == nil {
		return fmt.Errorf("fix: %w", applyErr)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Lint.Timer.Summary())
	}
	return handleApplyResult(cmd.OutOrStdout(), res.Apply, applyErr, apply.DryRun, quiet)
}

func handleApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun, quiet bool) error {
	if res == nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			if !quiet {
				fmt.Fprintln(w, "No applicable fixes found.")
			}
			return nil
		}
		return applyErr
	}

	if len(res.Applied) > 0 && !quiet {
		fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] - %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			for _, change := range res.FileChanges {
				fmt.Fprintf(w, "== %s (%d edits) ==\n", change.Path, change.EditCount)
				_, _ = w.Write(change.Content)
			}
		} else if !quiet {
			fmt.Fprintln(w, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}

	if len(res.Conflicts) > 0 {
		fmt.Fprintln(w, "Conflicting fixes, files left untouched:")
		for _, c := range res.Conflicts {
			fmt.Fprintf(w, "  %s: %v\n", c.Path, c.Err)
		}
	}

	if len(res.Skipped) > 0 && !quiet {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			if !quiet {
				fmt.Fprintln(w, "No applicable fixes found.")
			}
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 && !quiet {
		fmt.Fprintln(w, "No fixes applied.")
	}
	if len(res.Conflicts) > 0 {
		return &exitCodeError{code: 1}
	}
	return nil
}
