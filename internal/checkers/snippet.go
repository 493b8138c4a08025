package checkers

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"sort"

	"github.com/sirkon/typeexpect/internal/expect"
)

// SnippetProvider type-checks in-memory sources forming one package. It
// backs tests and single-file verification; imports are not resolved, an
// import in a snippet surfaces as a checker diagnostic.
type SnippetProvider struct {
	// Path is the package path the snippet is checked under.
	Path string
	// Sources maps file names to file contents.
	Sources map[string]string
}

// Snippet is a single-file provider shortcut.
func Snippet(name, src string) *SnippetProvider {
	return &SnippetProvider{
		Path:    "snippet",
		Sources: map[string]string{name: src},
	}
}

// Instance parses the sources from scratch and type-checks them under the
// given language version, so every instance owns its own trees.
func (p *SnippetProvider) Instance(goVersion string) (*Instance, error) {
	fset := token.NewFileSet()
	var files []*ast.File
	var parseDiags []expect.Diagnostic

	for _, name := range sortedKeys(p.Sources) {
		f, err := parser.ParseFile(fset, name, p.Sources[name], parser.ParseComments|parser.SkipObjectResolution)
		if f == nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err != nil {
			parseDiags = append(parseDiags, parseErrorDiags(err)...)
		}
		files = append(files, f)
	}

	return newInstance(fset, files, parseDiags, p.Path, goVersion, nil), nil
}

// Source returns the content of the named snippet file.
func (p *SnippetProvider) Source(name string) ([]byte, error) {
	src, ok := p.Sources[name]
	if !ok {
		return nil, fmt.Errorf("no snippet source named %s", name)
	}
	return []byte(src), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseErrorDiags converts syntax errors into diagnostics: a file that does
// not parse still gets reconciled against its $ExpectError assertions.
func parseErrorDiags(err error) []expect.Diagnostic {
	list, ok := err.(scanner.ErrorList)
	if !ok {
		return []expect.Diagnostic{{Message: err.Error()}}
	}
	out := make([]expect.Diagnostic, 0, len(list))
	for _, e := range list {
		out = append(out, expect.Diagnostic{
			File:    e.Pos.Filename,
			Offset:  e.Pos.Offset,
			Length:  1,
			Line:    e.Pos.Line - 1,
			Message: e.Msg,
		})
	}
	return out
}
