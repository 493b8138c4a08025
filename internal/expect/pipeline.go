// Package expect implements the assertion-verification pipeline: scanning
// $ExpectType/$ExpectError directives out of raw source text, matching type
// assertions to syntax nodes, and reconciling checker diagnostics against
// expected-error lines.
package expect

import (
	"go/ast"
	"go/token"
)

// CheckFile runs the full per-file pipeline for one checker instance:
// scan assertions, report duplicates, reconcile diagnostics, match types.
// All failure kinds accumulate; none aborts the rest of the file.
//
// The token file, syntax root, resolver and diagnostics must all originate
// from the same checker instance.
func CheckFile(
	text *SourceText,
	file *token.File,
	root ast.Node,
	typeOf TypeOfFunc,
	diags []Diagnostic,
) []Failure {
	table := Scan(text)

	var failures []Failure
	failures = append(failures, table.DuplicateFailures(text)...)
	failures = append(failures, ReconcileDiagnostics(text, table, diags)...)
	failures = append(failures, MatchTypes(text, file, root, table, typeOf)...)
	return failures
}
