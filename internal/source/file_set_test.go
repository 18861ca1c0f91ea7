package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.ar", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("test.ar")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// Тот же путь с новым содержимым получает новый ID
	id2 := fs.Add("test.ar", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}
	latestID, _ = fs.GetLatest("test.ar")
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("old version content changed: %q", got)
	}
	if got := string(fs.Get(id2).Content); got != "hello universe" {
		t.Errorf("new version content: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 versions, got %d", fs.Len())
	}
}

func TestFileSetGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if fs.Get(3) != nil {
		t.Fatal("expected nil for unknown id")
	}
	start, end := fs.Resolve(Span{File: 3, Start: 0, End: 1})
	if start != (LineCol{}) || end != (LineCol{}) {
		t.Fatalf("expected zero positions, got %v %v", start, end)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("virt.ar", []byte("def a() {}\ndef b() {}\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{Line: 1, Col: 1}},
		{"newline char belongs to first line", 10, LineCol{Line: 1, Col: 11}},
		{"second line start", 11, LineCol{Line: 2, Col: 1}},
		{"second line middle", 15, LineCol{Line: 2, Col: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if got != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if got := f.GetLine(2); got != "def b() {}" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(7); got != "" {
		t.Errorf("GetLine(7) = %q, want empty", got)
	}
}
