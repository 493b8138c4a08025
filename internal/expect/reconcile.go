package expect

import (
	"fmt"

	"github.com/sirkon/typeexpect/internal/exprules"
)

// ReconcileDiagnostics cross-references the checker's diagnostics against
// the table's expected-error lines. A diagnostic is expected iff its
// starting line carries an $ExpectError assertion; everything else is
// reported, with a distinct message for diagnostics not attributable to the
// file under test. Foreign failures anchor at the start of the file under
// test, as its offsets cannot express the real position; the message carries
// the real file:line instead. Expected-error lines with no diagnostic at all
// are reported as missing one, except lines whose assertion was duplicated —
// those already carry a duplicate failure and nothing else.
//
// Diagnostics produced only for emission are a collaborator concern:
// providers query semantic (pre-emit) diagnostics only.
func ReconcileDiagnostics(text *SourceText, table *Table, diags []Diagnostic) []Failure {
	var failures []Failure

	seen := make(map[int]bool)
	for _, d := range diags {
		if d.File != text.Name() {
			failures = append(failures, Failure{
				Rule:    exprules.ForeignFileDiagnostic(),
				Offset:  0,
				Length:  0,
				Message: fmt.Sprintf("checker reported an error outside this file, at %s:%d: %s", d.File, d.Line+1, d.Message),
			})
			continue
		}

		seen[d.Line] = true
		if table.ExpectsError(d.Line) {
			continue
		}
		failures = append(failures, Failure{
			Rule:    exprules.UnexpectedDiagnostic(),
			Offset:  d.Offset,
			Length:  d.Length,
			Message: fmt.Sprintf("unexpected checker error: %s", d.Message),
		})
	}

	for _, line := range table.ErrorLines() {
		if seen[line] || table.DuplicatedError(line) {
			continue
		}
		failures = append(failures, Failure{
			Rule:    exprules.MissingExpectedError(),
			Offset:  text.LineStart(line),
			Length:  len(text.Line(line)),
			Message: "expected a checker error on this line, but none was reported",
		})
	}

	return failures
}
