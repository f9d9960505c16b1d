package analyze

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"argnorm/internal/logger"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and indexes their exported functions.
type Analyzer struct {
	index *SignatureIndex
	dir   string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{index: NewSignatureIndex()}
}

// WithDir sets the directory packages are resolved from.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// LoadPackages loads the specified packages and indexes their functions.
// Patterns are standard Go package patterns (e.g., "./catalog", "argnorm/catalog").
func (a *Analyzer) LoadPackages(patterns ...string) (*SignatureIndex, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.index, nil
}

// Index returns the current signature index.
func (a *Analyzer) Index() *SignatureIndex {
	return a.index
}

// processPackage indexes the exported package-level functions of pkg.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	ids := []FuncID{}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Recv() != nil {
			continue
		}

		id := FuncID{PkgPath: pkg.PkgPath, Name: name}
		a.index.Funcs[id] = &FuncInfo{
			ID:     id,
			Params: params(sig, pkg.Types),
			GoType: sig,
		}

		ids = append(ids, id)
	}

	a.index.Packages[pkg.PkgPath] = ids
	logger.Debug("package indexed", "package", pkg.PkgPath, "funcs", len(ids))
}

func params(sig *types.Signature, pkg *types.Package) []ParamInfo {
	qualifier := types.RelativeTo(pkg)
	tuple := sig.Params()

	out := make([]ParamInfo, tuple.Len())
	for i := range out {
		v := tuple.At(i)

		out[i] = ParamInfo{
			Name:     v.Name(),
			Type:     types.TypeString(v.Type(), qualifier),
			Context:  isContext(v.Type()),
			Variadic: sig.Variadic() && i == tuple.Len()-1,
		}
	}

	return out
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}
