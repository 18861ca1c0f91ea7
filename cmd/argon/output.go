package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"argon/internal/diag"
	"argon/internal/diagfmt"
	"argon/internal/source"
)

// writeDiagnostics renders bag in one of pretty|short|json.
func writeDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, format string, pathMode diagfmt.PathMode) error {
	switch format {
	case "pretty":
		color, err := useColor(cmd, w)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: true,
		})
		return nil
	case "short":
		_, err := io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
		})
	}
	return fmt.Errorf("unknown format: %s", format)
}

func pathModeFlag(cmd *cobra.Command) (diagfmt.PathMode, error) {
	s, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return diagfmt.PathModeAuto, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(strings.ToLower(s))
	if !ok {
		return diagfmt.PathModeAuto, fmt.Errorf("invalid --path-mode %q (expected: auto|absolute|relative|basename)", s)
	}
	return mode, nil
}
