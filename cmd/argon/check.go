package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"argon/internal/driver"
	"argon/internal/infer"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.ar|directory]...",
		Short: "Type-check argon source files",
		Long: `Check parses, resolves and infers every function of the given files.
Without arguments the [build].sources of argon.toml are checked.`,
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("types", false, "print inferred function signatures")
	cmd.Flags().Bool("progress", false, "report pipeline phases on stderr")
	cmd.Flags().String("ui", "auto", "progress rendering for --progress (auto|on|off)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	pathMode, err := pathModeFlag(cmd)
	if err != nil {
		return err
	}
	showTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}
	progress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}

	paths, err := cfg.inputs(args)
	if err != nil {
		return err
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	var res *driver.Result
	errOut := cmd.ErrOrStderr()
	if progress && shouldUseTUI(mode, errOut) {
		res, err = runCheckWithUI(cmd.Context(), errOut, cfg, paths)
	} else {
		var onPhase driver.PhaseObserver
		if progress {
			onPhase = lineProgress(errOut)
		}
		var drv *driver.Driver
		if drv, err = cfg.newDriver(onPhase); err != nil {
			return err
		}
		res, err = drv.Check(cmd.Context(), paths...)
	}
	if err != nil {
		return err
	}

	diagOut := cmd.ErrOrStderr()
	if format == "json" {
		diagOut = cmd.OutOrStdout()
	}
	if res.Bag.Len() > 0 || format == "json" {
		if err := writeDiagnostics(cmd, diagOut, res.Bag, res.FileSet, format, pathMode); err != nil {
			return err
		}
	}
	if showTypes {
		printSignatures(cmd.OutOrStdout(), res)
	}
	if res.HasErrors() {
		return errFailed
	}
	return nil
}

func printSignatures(w io.Writer, res *driver.Result) {
	for _, m := range res.Modules {
		for _, fn := range m.Funcs {
			fmt.Fprintln(w, signature(fn))
		}
	}
}

// signature renders fn as `name: fn(i32, i32) -> i32`.
func signature(fn *infer.Function) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s: fn(%s) -> %s", fn.Source.Name, strings.Join(params, ", "), fn.Result)
}
