package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans in one file",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other starts earlier",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 2, End: 12},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "contained span",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 12, End: 14},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "different files - returns original",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 50},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Cover(tt.other); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Basics(t *testing.T) {
	sp := Span{File: 3, Start: 4, End: 9}
	if sp.Empty() {
		t.Fatal("span should not be empty")
	}
	if sp.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", sp.Len())
	}
	if sp.String() != "3:4-9" {
		t.Fatalf("String() = %q", sp.String())
	}
	moved := sp.WithFile(7)
	if moved.File != 7 || moved.Start != 4 || moved.End != 9 {
		t.Fatalf("WithFile() = %+v", moved)
	}
	if !(Span{Start: 2, End: 2}).Empty() {
		t.Fatal("zero-length span should be empty")
	}
}
