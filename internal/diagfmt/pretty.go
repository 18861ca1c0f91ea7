package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"argon/internal/diag"
	"argon/internal/source"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type palette struct {
	err, warn, info, note, gutter, caret, code func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		code:   mk(color.Faint),
	}
}

func (p palette) severity(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.err(s.String())
	case diag.SevWarning:
		return p.warn(s.String())
	}
	return p.info(s.String())
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := fmt.Sprintf("%s %s: %s", pal.severity(d.Severity), pal.code(d.Code.ID()), d.Message)

	// таймингам место не нужно
	if d.Code == diag.ObsTimings {
		fmt.Fprintln(w, header)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s\n", pal.note("note:"), n.Msg)
			}
		}
		return
	}

	file := fs.Get(d.Primary.File)
	if file == nil {
		fmt.Fprintln(w, header)
		return
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s\n", formatPath(fs, file, opts.PathMode), start.Line, start.Col, header)
	if len(file.Content) > 0 {
		snippet(w, file, start, end, opts, pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", pal.note("note:"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note("note:"), formatPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

func snippet(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + ctx
	if n := uint32(len(file.LineIdx)) + 1; last > n {
		last = n
	}

	gutterWidth := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(w, "%s %s\n", blank, pal.gutter("|"))

	for ln := first; ln <= last; ln++ {
		text := strings.TrimRight(file.GetLine(ln), "\r")
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%*d %s %s\n", gutterWidth, ln, pal.gutter("|"), text)
		if ln != start.Line {
			continue
		}

		// отступ и ширина подчёркивания считаются в колонках терминала
		line := file.GetLine(ln)
		prefix := clip(line, start.Col-1)
		marked := ""
		if end.Line == start.Line && end.Col > start.Col {
			marked = clip(line, end.Col-1)[len(prefix):]
		}
		pad := runewidth.StringWidth(expandTabs(prefix))
		width := max(runewidth.StringWidth(marked), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s %s%s\n", blank, pal.gutter("|"), strings.Repeat(" ", pad), pal.caret(underline))
	}
}

// clip returns the first n bytes of line; columns from Resolve are bytes.
func clip(line string, n uint32) string {
	if int(n) >= len(line) {
		return line
	}
	return line[:n]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
