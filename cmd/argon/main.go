package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"argon/internal/version"
)

// errFailed signals a run that already printed its diagnostics.
var errFailed = errors.New("check failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "argon",
		Short:         "Argon language frontend",
		Long:          `Argon tokenizes, parses and type-checks argon source files`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.Bool("timings", false, "show timing information")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode=ring|both")
	pf.String("cache-dir", "", "directory of the on-disk parse cache")
	pf.Bool("no-disk-cache", false, "keep parsed modules in memory only")

	var cleanup func()
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cleanup, err = setupTracing(cmd)
		return err
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
		}
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "argon: %v\n", err)
		}
		os.Exit(1)
	}
}

// useColor resolves --color against the writer: auto means colour only on a terminal.
func useColor(cmd *cobra.Command, out any) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected: auto|on|off)", mode)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
