// Package exprules defines the canonical rule codes (EXP-series) rendered by typeexpect.
// Each rule represents a distinct verdict kind produced by the verification pipeline.
//
// Rule numbering scheme:
//
//	000–009  Assertion well-formedness
//	010–019  Assertion/node correlation
//	020–039  Diagnostic reconciliation
//	040–049  Type comparison
//	900+     Internal invariants
package exprules

import "fmt"

// Rule represents a typeexpect rule code (EXP-series).
type Rule int

const (
	ruleInvalid Rule = iota

	EXP000DuplicateAssertion
	EXP010UnmatchedAssertion
	EXP020UnexpectedDiagnostic
	EXP025ForeignFileDiagnostic
	EXP030MissingExpectedError
	EXP040TypeMismatch
	EXP900InternalInvariant
)

// String returns the canonical code and short name of the rule.
// Example: "EXP040: TypeMismatch"
func (r Rule) String() string {
	switch r {
	case EXP000DuplicateAssertion:
		return "EXP000: DuplicateAssertion"
	case EXP010UnmatchedAssertion:
		return "EXP010: UnmatchedAssertion"
	case EXP020UnexpectedDiagnostic:
		return "EXP020: UnexpectedDiagnostic"
	case EXP025ForeignFileDiagnostic:
		return "EXP025: ForeignFileDiagnostic"
	case EXP030MissingExpectedError:
		return "EXP030: MissingExpectedError"
	case EXP040TypeMismatch:
		return "EXP040: TypeMismatch"
	case EXP900InternalInvariant:
		return "EXP900: InternalInvariant"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case EXP000DuplicateAssertion:
		return "A line may carry at most one assertion of each kind."
	case EXP010UnmatchedAssertion:
		return "An $ExpectType assertion must have a typed node on its line."
	case EXP020UnexpectedDiagnostic:
		return "The checker reported an error on a line without an $ExpectError assertion."
	case EXP025ForeignFileDiagnostic:
		return "The checker reported an error in a file other than the one under test."
	case EXP030MissingExpectedError:
		return "An $ExpectError line produced no checker diagnostic."
	case EXP040TypeMismatch:
		return "The normalized inferred type differs from the asserted one."
	case EXP900InternalInvariant:
		return "The version search reached a state proven unreachable by its precondition."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// Canonical constructors — for readability and stable call sites.

func DuplicateAssertion() Rule    { return EXP000DuplicateAssertion }
func UnmatchedAssertion() Rule    { return EXP010UnmatchedAssertion }
func UnexpectedDiagnostic() Rule  { return EXP020UnexpectedDiagnostic }
func ForeignFileDiagnostic() Rule { return EXP025ForeignFileDiagnostic }
func MissingExpectedError() Rule  { return EXP030MissingExpectedError }
func TypeMismatch() Rule          { return EXP040TypeMismatch }
func InternalInvariant() Rule     { return EXP900InternalInvariant }
