package expect

import (
	"fmt"
	"sort"

	"github.com/sirkon/typeexpect/internal/exprules"
)

// AssertionKind discriminates the two directive kinds.
type AssertionKind int

const (
	assertionInvalid AssertionKind = iota
	AssertionType
	AssertionError
)

func (k AssertionKind) String() string {
	switch k {
	case AssertionType:
		return "$ExpectType"
	case AssertionError:
		return "$ExpectError"
	default:
		return fmt.Sprintf("assertion-unknown(%d)", k)
	}
}

// Duplicate marks a line carrying more than one assertion of the same kind.
type Duplicate struct {
	Line int
	Kind AssertionKind
}

// Table is the scan result: the expected-error line set, the pending
// line→expected-type map, and the duplicate markers. It is built fresh per
// (source, checker version) run and mutated during node matching as entries
// are consumed.
//
// Invariant: per line and per kind, at most one of {pending assertion,
// duplicate marker} holds; the two kinds are independent.
type Table struct {
	errorLines map[int]bool
	dupErrors  map[int]bool
	types      map[int]string
	dupTypes   map[int]bool
}

// NewTable returns an empty assertion table.
func NewTable() *Table {
	return &Table{
		errorLines: make(map[int]bool),
		dupErrors:  make(map[int]bool),
		types:      make(map[int]string),
		dupTypes:   make(map[int]bool),
	}
}

// addError registers an $ExpectError assertion for the line. A second
// occurrence keeps the set membership but flags the line as duplicated.
func (t *Table) addError(line int) {
	if t.dupErrors[line] {
		return
	}
	if t.errorLines[line] {
		t.dupErrors[line] = true
		return
	}
	t.errorLines[line] = true
}

// addType registers an $ExpectType assertion for the line. A second
// occurrence voids the previously captured text entirely: the duplicate
// marker wins over retaining either value.
func (t *Table) addType(line int, text string) {
	if t.dupTypes[line] {
		return
	}
	if _, ok := t.types[line]; ok {
		delete(t.types, line)
		t.dupTypes[line] = true
		return
	}
	t.types[line] = text
}

// ExpectsError reports whether the line carries an error assertion.
func (t *Table) ExpectsError(line int) bool { return t.errorLines[line] }

// TypeExpectation returns the pending expected-type text for the line.
func (t *Table) TypeExpectation(line int) (string, bool) {
	text, ok := t.types[line]
	return text, ok
}

// ConsumeType removes the pending type assertion for the line. First-match
// wins: the matcher calls this for the first eligible node it visits.
func (t *Table) ConsumeType(line int) { delete(t.types, line) }

// PendingTypes reports whether any type assertion is still unconsumed.
func (t *Table) PendingTypes() bool { return len(t.types) > 0 }

// PendingTypeLines returns the unconsumed assertion lines in order.
func (t *Table) PendingTypeLines() []int {
	lines := make([]int, 0, len(t.types))
	for line := range t.types {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// ErrorLines returns all expected-error lines in order, duplicated ones
// included.
func (t *Table) ErrorLines() []int {
	lines := make([]int, 0, len(t.errorLines))
	for line := range t.errorLines {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// DuplicatedError reports whether the error assertion on the line was
// duplicated. Such lines still count as expecting a diagnostic but are never
// reported as missing one.
func (t *Table) DuplicatedError(line int) bool { return t.dupErrors[line] }

// Duplicates returns all duplicate markers ordered by line, error kind first
// on a line that managed to duplicate both.
func (t *Table) Duplicates() []Duplicate {
	dups := make([]Duplicate, 0, len(t.dupErrors)+len(t.dupTypes))
	for line := range t.dupErrors {
		dups = append(dups, Duplicate{Line: line, Kind: AssertionError})
	}
	for line := range t.dupTypes {
		dups = append(dups, Duplicate{Line: line, Kind: AssertionType})
	}
	sort.Slice(dups, func(i, j int) bool {
		if dups[i].Line != dups[j].Line {
			return dups[i].Line < dups[j].Line
		}
		return dups[i].Kind > dups[j].Kind
	})
	return dups
}

// Empty reports whether the scan found no assertions at all. This is the
// common case and callers use it to skip the rest of the pipeline.
func (t *Table) Empty() bool {
	return len(t.errorLines) == 0 && len(t.types) == 0 &&
		len(t.dupErrors) == 0 && len(t.dupTypes) == 0
}

// DuplicateFailures renders one failure per duplicate marker, spanning the
// offending line.
func (t *Table) DuplicateFailures(text *SourceText) []Failure {
	var out []Failure
	for _, dup := range t.Duplicates() {
		out = append(out, Failure{
			Rule:    exprules.DuplicateAssertion(),
			Offset:  text.LineStart(dup.Line),
			Length:  len(text.Line(dup.Line)),
			Message: fmt.Sprintf("more than one %s assertion targets this line", dup.Kind),
		})
	}
	return out
}
