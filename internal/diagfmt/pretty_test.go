package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"argon/internal/diag"
	"argon/internal/lexer"
	"argon/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("def f() -> i32 { x }\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.ar", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ResUnresolvedName, source.Span{File: fileID, Start: 17, End: 18}, `cannot find "x" in this scope`))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.ar:1:18"},
		{"relative", PathModeRelative, "src/test.ar:1:18"},
		{"basename", PathModeBasename, "test.ar:1:18"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "RES3001", `cannot find "x"`} {
				if !strings.Contains(out, want) {
					t.Errorf("output lacks %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.ar", []byte("def f(x: i64) -> i32 {\n  x + 1\n}\n"))

	bag := diag.NewBag(4)
	d := diag.NewError(diag.SemaTypeMismatch, source.Span{File: id, Start: 25, End: 30}, "mismatched types: i64 and i32").
		WithNote(source.Span{File: id, Start: 9, End: 12}, "this is i64")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	out := buf.String()

	want := []string{
		"m.ar:2:3: ERROR SEM4001: mismatched types: i64 and i32",
		"2 |   x + 1",
		"  |   ^~~~~",
		"note: m.ar:1:10: this is i64",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output lacks %q:\n%s", w, out)
		}
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.ar", []byte("a\nb\nc\nd\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 4, End: 5}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	for _, w := range []string{"2 | b", "3 | c", "4 | d"} {
		if !strings.Contains(out, w) {
			t.Errorf("output lacks %q:\n%s", w, out)
		}
	}
	if strings.Contains(out, "1 | a") {
		t.Errorf("context must stop one line above:\n%s", out)
	}
}

func TestPrettyTimingsHaveNoLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("x.ar", []byte("def f() {}"))
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Message: "timings (check): total 1.00 ms",
		Notes: []diag.Note{{Msg: `{"kind":"check"}`}}})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if strings.Contains(out, "x.ar") || !strings.Contains(out, "INFO OBS6001") || !strings.Contains(out, `{"kind":"check"}`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.ar", []byte("def f() {}"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 3}, "boom"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("plain output must not contain escapes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("colored output must contain escapes")
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("j.ar", []byte("def f() -> i32 { true }"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaTypeMismatch, source.Span{File: id, Start: 17, End: 21}, "mismatched types: bool and i32").
		WithNote(source.Span{File: id, Start: 11, End: 14}, "this is i32"))
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Message: "t", Notes: []diag.Note{{Msg: "{}"}}})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SEM4001" || first.Location == nil || first.Location.StartCol != 18 || first.Location.File != "j.ar" {
		t.Fatalf("first = %+v", first)
	}
	if len(first.Notes) != 0 {
		t.Fatal("notes are opt-in")
	}
	timing := out.Diagnostics[1]
	if timing.Location != nil || len(timing.Notes) != 1 {
		t.Fatalf("timing = %+v", timing)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ar", []byte("def f() {}"))
	tokens := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(tokens) || !strings.Contains(lines[0], `"def"`) {
		t.Fatalf("pretty tokens:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(tokens) || out[1].Text != "f" || out[1].Col != 5 {
		t.Fatalf("json tokens = %+v", out)
	}
}
