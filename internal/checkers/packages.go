package checkers

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/sirkon/typeexpect/internal/expect"
)

// PackagesProvider builds checker instances for a real on-disk package.
// The project is loaded once via go/packages; per-version instances re-parse
// and re-check the package's own sources against the already loaded import
// graph, since dependency type information does not vary with the language
// version of the package under test.
type PackagesProvider struct {
	dir string

	once    sync.Once
	loadErr error
	pkg     *packages.Package
	deps    map[string]*types.Package
	sources map[string][]byte
}

// NewPackagesProvider prepares a provider for the package in dir. Loading
// is lazy: the first Instance or Source call triggers it.
func NewPackagesProvider(dir string) *PackagesProvider {
	return &PackagesProvider{dir: dir}
}

func (p *PackagesProvider) load() error {
	p.once.Do(func() {
		cfg := &packages.Config{
			Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
				packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
				packages.NeedSyntax | packages.NeedTypesInfo,
			Dir: p.dir,
		}
		pkgs, err := packages.Load(cfg, ".")
		if err != nil {
			p.loadErr = fmt.Errorf("load package in %s: %w", p.dir, err)
			return
		}
		if len(pkgs) != 1 {
			p.loadErr = fmt.Errorf("expected exactly one package in %s, got %d", p.dir, len(pkgs))
			return
		}
		p.pkg = pkgs[0]

		p.deps = make(map[string]*types.Package)
		collectDeps(p.pkg, p.deps)

		p.sources = make(map[string][]byte)
		for _, name := range p.pkg.CompiledGoFiles {
			src, err := os.ReadFile(name)
			if err != nil {
				p.loadErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			p.sources[name] = src
		}
	})
	return p.loadErr
}

func collectDeps(pkg *packages.Package, into map[string]*types.Package) {
	for path, imp := range pkg.Imports {
		if _, ok := into[path]; ok {
			continue
		}
		into[path] = imp.Types
		collectDeps(imp, into)
	}
}

// FileNames returns the package's compiled Go files, the candidates for
// verification.
func (p *PackagesProvider) FileNames() ([]string, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	return append([]string(nil), p.pkg.CompiledGoFiles...), nil
}

// Source returns the raw content of one of the package's files.
func (p *PackagesProvider) Source(name string) ([]byte, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	src, ok := p.sources[name]
	if !ok {
		return nil, fmt.Errorf("file %s is not part of the package in %s", name, p.dir)
	}
	return src, nil
}

// Instance builds a checker instance for the given language version. The
// empty version reuses the load's own type information; any other version
// re-parses the sources so the instance owns its trees.
func (p *PackagesProvider) Instance(goVersion string) (*Instance, error) {
	if err := p.load(); err != nil {
		return nil, err
	}

	if goVersion == "" {
		inst := &Instance{
			fset:  p.pkg.Fset,
			files: p.pkg.Syntax,
			pkg:   p.pkg.Types,
			info:  p.pkg.TypesInfo,
		}
		for _, te := range p.pkg.TypeErrors {
			inst.addError(te)
		}
		return inst, nil
	}

	fset := token.NewFileSet()
	var files []*ast.File
	var parseDiags []expect.Diagnostic
	for _, name := range p.pkg.CompiledGoFiles {
		f, err := parser.ParseFile(fset, name, p.sources[name], parser.ParseComments|parser.SkipObjectResolution)
		if f == nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err != nil {
			parseDiags = append(parseDiags, parseErrorDiags(err)...)
		}
		files = append(files, f)
	}

	return newInstance(fset, files, parseDiags, p.pkg.PkgPath, goVersion, depImporter{deps: p.deps}), nil
}

// depImporter resolves imports against the packages already loaded by the
// initial go/packages pass.
type depImporter struct {
	deps map[string]*types.Package
}

func (i depImporter) Import(path string) (*types.Package, error) {
	if path == "unsafe" {
		return types.Unsafe, nil
	}
	pkg, ok := i.deps[path]
	if !ok || pkg == nil {
		return nil, fmt.Errorf("package %s was not loaded with the project", path)
	}
	return pkg, nil
}
