package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/version"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [file|directory]...",
	Short: "Lint source files or directories",
	Long:  `Lint runs every enabled rule over the given files, or over every included file below the given directories`,
	RunE:  runLint,
}

func init() {
	addOutputFlags(lintCmd)
	addRunFlags(lintCmd)
	lintCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

// addRunFlags registers the flags that shape a driver run.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "config file (default: tsrules.toml or tsrules.yaml found up the tree)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse lint results of unchanged files")
	cmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/tsrules)")
}

func readRunOptions(cmd *cobra.Command, targets []string) (driver.Options, error) {
	var opts driver.Options
	cfg, err := loadConfig(cmd, targets)
	if err != nil {
		return opts, err
	}
	opts.Config = cfg
	opts.Version = version.Version

	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if useCache || cacheDir != "" {
		var cache *driver.DiskCache
		if cacheDir != "" {
			cache, err = driver.OpenDiskCacheAt(cacheDir)
		} else {
			cache, err = driver.OpenDiskCache("tsrules")
		}
		if err != nil {
			return opts, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func runLint(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd, args)
	if err != nil {
		return err
	}
	opts, err := readRunOptions(cmd, args)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var res *driver.Result
	if shouldUseTUI(mode, out.format) {
		files, listErr := driver.ListFiles(args, opts.Config)
		if listErr != nil {
			return listErr
		}
		res, err = runLintWithUI(cmd.Context(), "tsrules lint", files, args, opts)
	} else {
		res, err = driver.Lint(cmd.Context(), args, opts)
	}
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	if out.timings {
		if out.format == "pretty" || out.format == "short" {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
		} else {
			driver.AppendTimings(res)
		}
	}
	if err := writeDiagnostics(cmd.OutOrStdout(), res, out); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if code := lintExitCode(res); code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}
