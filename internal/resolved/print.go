package resolved

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a readable form of m, one function per paragraph.
func Dump(w io.Writer, m *Module) error {
	var sb strings.Builder
	for i, fn := range m.Funcs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		dumpFunction(&sb, fn)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpFunction(sb *strings.Builder, fn *Function) {
	if fn.Exported {
		sb.WriteString("export ")
	}
	fmt.Fprintf(sb, "fn#%d %s(", fn.ID, fn.Name)
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%%%d %s: %s", p.Local, p.Name, p.Type)
	}
	fmt.Fprintf(sb, ") -> %s", fn.Result)
	if fn.Invalid {
		sb.WriteString(" !invalid")
	}
	sb.WriteString("\n")
	for _, e := range fn.Body.Exprs {
		sb.WriteString("  ")
		sb.WriteString(FormatExpr(e))
		sb.WriteString("\n")
	}
}

// FormatExpr renders e fully parenthesised.
func FormatExpr(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprInt, ExprFloat:
		return e.Text
	case ExprBool:
		if e.Bool {
			return "true"
		}
		return "false"
	case ExprLocal:
		return fmt.Sprintf("%%%d", e.Local)
	case ExprBinary:
		return "(" + FormatExpr(e.Left) + " " + e.Op.String() + " " + FormatExpr(e.Right) + ")"
	}
	return "<invalid>"
}
