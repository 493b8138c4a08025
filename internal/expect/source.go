package expect

import (
	"github.com/sirkon/rbtree"
)

// lineSpan stores the [start,end] byte span of one source line, '\n' included.
// Unlike statement spans, line spans are disjoint by construction, so the
// RB-tree never needs a containment fix-up.
type lineSpan struct {
	start int
	end   int

	line int
}

// Cmp defines ordering for the RB-tree as "disjoint by offset".
//   - return -1 if this span ends before other starts
//   - return  1 if this span starts after other ends
//   - return  0 if spans overlap (for disjoint lines this means a probe hit).
func (s *lineSpan) Cmp(other *lineSpan) int {
	if s.end < other.start {
		return -1
	}
	if s.start > other.end {
		return 1
	}
	return 0
}

// SourceText is the raw content of one file under test plus its derived line
// index. Immutable once built. Lines are zero-based everywhere in this package.
type SourceText struct {
	name    string
	content []byte
	starts  []int
	index   *rbtree.Tree[*lineSpan]
}

// NewSourceText builds the line index for the given raw content.
func NewSourceText(name string, content []byte) *SourceText {
	t := &SourceText{
		name:    name,
		content: content,
		starts:  []int{0},
		index:   rbtree.New[*lineSpan](),
	}
	for i, c := range content {
		if c == '\n' {
			t.starts = append(t.starts, i+1)
		}
	}
	for i, start := range t.starts {
		end := len(content) - 1
		if i+1 < len(t.starts) {
			end = t.starts[i+1] - 1
		}
		if end < start {
			end = start
		}
		t.index.InsertReturn(&lineSpan{start: start, end: end, line: i})
	}
	return t
}

// Name returns the file name the content was loaded from.
func (t *SourceText) Name() string { return t.name }

// Bytes returns the raw content.
func (t *SourceText) Bytes() []byte { return t.content }

// Len returns the content length in bytes.
func (t *SourceText) Len() int { return len(t.content) }

// NumLines returns the number of lines, counting a trailing empty line
// after a final '\n'.
func (t *SourceText) NumLines() int { return len(t.starts) }

// LineFor returns the zero-based line containing the given byte offset.
// Out-of-range offsets clamp to the first/last line.
func (t *SourceText) LineFor(offset int) int {
	if offset < 0 {
		return 0
	}
	probe := &lineSpan{start: offset, end: offset}
	res := t.index.Search(probe)
	if res == nil {
		return len(t.starts) - 1
	}
	return res.line
}

// LineStart returns the byte offset of the first character of the line.
func (t *SourceText) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(t.starts) {
		return len(t.content)
	}
	return t.starts[line]
}

// Line returns the text of the line without its trailing '\n'.
func (t *SourceText) Line(line int) string {
	if line < 0 || line >= len(t.starts) {
		return ""
	}
	start := t.starts[line]
	end := len(t.content)
	if line+1 < len(t.starts) {
		end = t.starts[line+1] - 1
	}
	return string(t.content[start:end])
}
