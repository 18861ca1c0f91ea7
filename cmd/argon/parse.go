package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/resolved"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.ar",
		Short: "Parse an argon source file and print its syntax tree",
		Long:  `Parse prints the syntax tree of a file, or with --format=resolved the name-resolved functions`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|resolved)")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "resolved" {
		return fmt.Errorf("unknown format: %s", format)
	}
	pathMode, err := pathModeFlag(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	cfg.diskCache = false
	drv, err := cfg.newDriver(nil)
	if err != nil {
		return err
	}

	result, err := drv.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Module != nil {
		switch format {
		case "tree":
			err = ast.Fprint(cmd.OutOrStdout(), result.Module)
		case "resolved":
			mod, diags := resolved.Lower(result.Module)
			for _, d := range diags {
				result.Bag.Add(d)
			}
			result.Bag.Sort()
			err = resolved.Dump(cmd.OutOrStdout(), mod)
		}
		if err != nil {
			return err
		}
	}

	if result.Bag.Len() > 0 {
		if err := writeDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty", pathMode); err != nil {
			return err
		}
	}
	if result.Module == nil || hasErrors(result.Bag) {
		return errFailed
	}
	return nil
}

func hasErrors(bag *diag.Bag) bool {
	return bag != nil && bag.HasErrors()
}
