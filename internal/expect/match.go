package expect

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/sirkon/typeexpect/internal/exprules"
)

// TypeOfFunc resolves an expression to its rendered, non-truncated type
// text. The second result is false when the checker has no type for the
// expression. Callers must always supply the resolver of the checker
// instance that owns the syntax tree being walked.
type TypeOfFunc func(expr ast.Expr) (string, bool)

// MatchTypes walks the syntax tree in pre-order and consumes the table's
// pending type assertions: the first eligible node on an asserted line —
// an expression the checker has a type for, after unwrapping a bare
// expression-statement wrapper — decides the verdict for that line.
// Pre-order guarantees the outermost expression on the line wins.
//
// Assertions left unconsumed after the walk have no matching node and are
// reported as such.
func MatchTypes(
	text *SourceText,
	file *token.File,
	root ast.Node,
	table *Table,
	typeOf TypeOfFunc,
) []Failure {
	var failures []Failure

	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if !table.PendingTypes() {
			return false
		}
		if !n.Pos().IsValid() {
			return true
		}

		line := text.LineFor(file.Offset(n.Pos()))
		expected, ok := table.TypeExpectation(line)
		if !ok {
			return true
		}

		// Annotations on a top-level expression attach to the expression's
		// type, not the statement's.
		if stmt, isStmt := n.(*ast.ExprStmt); isStmt {
			n = stmt.X
		}
		expr, isExpr := n.(ast.Expr)
		if !isExpr {
			return true
		}
		actual, ok := typeOf(expr)
		if !ok {
			return true
		}

		table.ConsumeType(line)
		if NormalizeType(expected) != NormalizeType(actual) {
			failures = append(failures, Failure{
				Rule:    exprules.TypeMismatch(),
				Offset:  file.Offset(expr.Pos()),
				Length:  file.Offset(expr.End()) - file.Offset(expr.Pos()),
				Message: fmt.Sprintf("expected type %q, got %q", expected, actual),
			})
		}
		return true
	})

	for _, line := range table.PendingTypeLines() {
		failures = append(failures, Failure{
			Rule:    exprules.UnmatchedAssertion(),
			Offset:  text.LineStart(line),
			Length:  len(text.Line(line)),
			Message: "no node on this line matches the $ExpectType assertion",
		})
	}

	return failures
}
