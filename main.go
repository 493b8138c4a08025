package main

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/typeexpect/internal/expect"
)

const doc = `typeexpect verifies $ExpectType and $ExpectError comment assertions

Source files under test annotate lines with
	// $ExpectType <type>
	// $ExpectError
comments and typeexpect fails when the Go type checker disagrees with them.

In analyzer mode the package has already type-checked cleanly, so $ExpectType
assertions are verified against the pass type information and every
$ExpectError assertion is reported as missing its error. Multi-version
verification is the job of the typeexpect-verify command.`

// Analyzer is the single-version entry point for the verifier.
var Analyzer = &analysis.Analyzer{
	Name: "typeexpect",
	Doc:  doc,
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	typeOf := func(expr ast.Expr) (string, bool) {
		t := pass.TypesInfo.TypeOf(expr)
		if t == nil {
			return "", false
		}
		return types.TypeString(t, types.RelativeTo(pass.Pkg)), true
	}

	for _, f := range pass.Files {
		tokFile := pass.Fset.File(f.Pos())
		if tokFile == nil {
			continue
		}

		src, err := pass.ReadFile(tokFile.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", tokFile.Name(), err)
		}
		text := expect.NewSourceText(tokFile.Name(), src)

		// No diagnostics exist by construction here: a package with type
		// errors never reaches an analyzer.
		for _, failure := range expect.CheckFile(text, tokFile, f, typeOf, nil) {
			pass.Report(analysis.Diagnostic{
				Pos:     tokFile.Pos(failure.Offset),
				End:     tokFile.Pos(failure.Offset + failure.Length),
				Message: fmt.Sprintf("%s: %s", failure.Rule, failure.Message),
			})
		}
	}

	return nil, nil
}

func main() {
	singlechecker.Main(Analyzer)
}
