package expect

import (
	"testing"
)

func TestSourceTextLineIndex(t *testing.T) {
	text := NewSourceText("probe.go", []byte("ab\ncd\n\nxyz"))

	if text.NumLines() != 4 {
		t.Fatalf("4 lines were expected, got %d", text.NumLines())
	}

	type test struct {
		name   string
		offset int
		line   int
	}
	testingFunc := func(tt test) func(t *testing.T) {
		return func(t *testing.T) {
			line := text.LineFor(tt.offset)
			if line != tt.line {
				t.Fatalf("line %d was expected for offset %d, got %d", tt.line, tt.offset, line)
			}
		}
	}

	tests := []test{
		{
			name:   "first-byte",
			offset: 0,
			line:   0,
		},
		{
			name:   "newline-belongs-to-its-line",
			offset: 2,
			line:   0,
		},
		{
			name:   "second-line",
			offset: 4,
			line:   1,
		},
		{
			name:   "empty-line",
			offset: 6,
			line:   2,
		},
		{
			name:   "last-line",
			offset: 9,
			line:   3,
		},
		{
			name:   "past-the-end-clamps",
			offset: 100,
			line:   3,
		},
		{
			name:   "negative-clamps",
			offset: -1,
			line:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, testingFunc(tt))
	}

	if got := text.Line(0); got != "ab" {
		t.Fatalf(`line 0 text "ab" was expected, got %q`, got)
	}
	if got := text.Line(2); got != "" {
		t.Fatalf("line 2 was expected to be empty, got %q", got)
	}
	if got := text.Line(3); got != "xyz" {
		t.Fatalf(`line 3 text "xyz" was expected, got %q`, got)
	}
	if got := text.LineStart(3); got != 7 {
		t.Fatalf("line 3 was expected to start at 7, got %d", got)
	}
}

func TestSourceTextEmpty(t *testing.T) {
	text := NewSourceText("empty.go", nil)
	if text.NumLines() != 1 {
		t.Fatalf("a single line was expected for empty content, got %d", text.NumLines())
	}
	if text.LineFor(0) != 0 {
		t.Fatal("offset 0 of empty content must be on line 0")
	}
}
