package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"argon/internal/diagfmt"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ar",
		Short: "Tokenize an argon source file",
		Long:  `Tokenize breaks down an argon source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
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

	result, err := drv.Tokenize(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		if err := writeDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty", diagfmt.PathModeAuto); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if hasErrors(result.Bag) {
		return errFailed
	}
	return nil
}
