// Package checkers constructs and owns type-analysis contexts: one Instance
// per Go language version, produced by a Provider. An Instance bundles the
// syntax trees it type-checked with the resolved type information, so type
// queries are always answered by the checker that owns the tree.
package checkers

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/sirkon/typeexpect/internal/expect"
)

// Provider builds checker instances for requested Go language versions.
// The empty version selects the checker default (the "next" semantics).
// Construction may be expensive; memoization is the caller's concern.
type Provider interface {
	Instance(goVersion string) (*Instance, error)
	Source(name string) ([]byte, error)
}

// Instance is a constructed type-analysis context: a parsed package plus
// the checker's type information and collected semantic diagnostics.
// Expensive to build, cheap to reuse.
type Instance struct {
	fset  *token.FileSet
	files []*ast.File
	pkg   *types.Package
	info  *types.Info
	diags []expect.Diagnostic
}

// newInstance type-checks the given parsed files under the given language
// version, collecting every semantic error instead of stopping at the first.
func newInstance(
	fset *token.FileSet,
	files []*ast.File,
	parseDiags []expect.Diagnostic,
	path string,
	goVersion string,
	imp types.Importer,
) *Instance {
	inst := &Instance{
		fset:  fset,
		files: files,
		diags: parseDiags,
		info: &types.Info{
			Types: make(map[ast.Expr]types.TypeAndValue),
			Defs:  make(map[*ast.Ident]types.Object),
			Uses:  make(map[*ast.Ident]types.Object),
		},
	}

	conf := types.Config{
		GoVersion: goVersion,
		Importer:  imp,
		Error: func(err error) {
			inst.addError(err)
		},
	}
	// The returned error duplicates the first handler call.
	pkg, _ := conf.Check(path, fset, files, inst.info)
	inst.pkg = pkg

	return inst
}

func (inst *Instance) addError(err error) {
	te, ok := err.(types.Error)
	if !ok {
		inst.diags = append(inst.diags, expect.Diagnostic{Message: err.Error()})
		return
	}
	pos := te.Fset.Position(te.Pos)
	inst.diags = append(inst.diags, expect.Diagnostic{
		File:    pos.Filename,
		Offset:  pos.Offset,
		Length:  1,
		Line:    pos.Line - 1,
		Message: te.Msg,
	})
}

// TypeOf renders the full, non-truncated type of the expression, qualified
// relative to the package under test. The second result is false when the
// checker has no type for the expression.
func (inst *Instance) TypeOf(expr ast.Expr) (string, bool) {
	t := inst.info.TypeOf(expr)
	if t == nil {
		return "", false
	}
	return inst.RenderType(t), true
}

// RenderType renders a type in its full structural text form.
func (inst *Instance) RenderType(t types.Type) string {
	return types.TypeString(t, types.RelativeTo(inst.pkg))
}

// File returns the syntax tree and position table of the named file.
func (inst *Instance) File(name string) (*ast.File, *token.File, error) {
	for _, f := range inst.files {
		tf := inst.fset.File(f.Pos())
		if tf != nil && tf.Name() == name {
			return f, tf, nil
		}
	}
	return nil, nil, fmt.Errorf("file %s is not part of the checked package", name)
}

// FileNames returns the names of all files the instance has checked.
func (inst *Instance) FileNames() []string {
	names := make([]string, 0, len(inst.files))
	for _, f := range inst.files {
		if tf := inst.fset.File(f.Pos()); tf != nil {
			names = append(names, tf.Name())
		}
	}
	return names
}

// Diagnostics returns the semantic diagnostics relevant to the named file:
// those starting in it, plus, when the named file is the package's first,
// those attributed to files outside the checked package (e.g. a broken
// referenced declaration). Foreign diagnostics are pinned to one file so a
// single broken reference surfaces once per instance, not once per file
// verified.
func (inst *Instance) Diagnostics(name string) []expect.Diagnostic {
	names := inst.FileNames()
	own := make(map[string]bool)
	for _, n := range names {
		own[n] = true
	}
	first := len(names) > 0 && names[0] == name

	var out []expect.Diagnostic
	for _, d := range inst.diags {
		if d.File == name || (first && !own[d.File]) {
			out = append(out, d)
		}
	}
	return out
}
