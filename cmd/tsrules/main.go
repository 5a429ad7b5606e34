package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tsrules",
	Short: "TypeScript and JavaScript lint rules",
	Long:  `tsrules checks TypeScript and JavaScript sources against a fixed rule set and applies the fixes rules offer`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stop, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileStop = stop
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		finishTracing(false)
	},
}

// profileStop останавливает профилировщики: после трассы, до выхода
var profileStop = func() {}

// traceCleanup сбрасывает и закрывает трассировщик; PersistentPostRun не
// вызывается при ошибке, поэтому его зовут и перед ранним выходом.
var traceCleanup func(failed bool)

func finishTracing(failed bool) {
	if traceCleanup != nil {
		traceCleanup(failed)
		traceCleanup = nil
	}
}

// exitCodeError carries a non-zero exit status out of a command.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// main initializes the CLI by setting the command version, registering subcommands and persistent flags, and then executes the root command.
// Lint findings of error severity exit with status 1, tool failures with status 2.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version
	// ошибки печатаем сами: exitCodeError выходит молча
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Добавляем команды
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode ring|both")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file when the run ends")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	var exitErr *exitCodeError
	// кольцо трассы выгружается только при сбое самого инструмента
	finishTracing(err != nil && !errors.As(err, &exitErr))
	profileStop()
	if err == nil {
		return
	}
	if exitErr != nil {
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(2)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
