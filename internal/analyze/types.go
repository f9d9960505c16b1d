package analyze

import (
	"go/types"
	"slices"
	"sort"
)

// FuncID uniquely identifies a function across packages.
type FuncID struct {
	PkgPath string
	Name    string
}

// String returns "pkg.Func".
func (id FuncID) String() string {
	if id.PkgPath == "" {
		return id.Name
	}

	return id.PkgPath + "." + id.Name
}

// ParamInfo describes one function parameter.
type ParamInfo struct {
	Name string
	// Type is the parameter type qualified by package name.
	Type string
	// Context is true for a context.Context parameter.
	Context bool
	// Variadic is true for the trailing ...T parameter.
	Variadic bool
}

// FuncInfo describes an exported function.
type FuncInfo struct {
	ID     FuncID
	Params []ParamInfo
	// GoType is the underlying go/types signature.
	GoType *types.Signature
}

// ParamNames returns the parameter names, skipping context parameters.
func (f *FuncInfo) ParamNames() []string {
	names := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		if p.Context {
			continue
		}

		names = append(names, p.Name)
	}

	return names
}

// HasParam reports whether the function has a parameter called name.
func (f *FuncInfo) HasParam(name string) bool {
	return slices.Contains(f.ParamNames(), name)
}

// SignatureIndex holds the functions of all loaded packages.
type SignatureIndex struct {
	Funcs    map[FuncID]*FuncInfo
	Packages map[string][]FuncID
}

// NewSignatureIndex creates an empty index.
func NewSignatureIndex() *SignatureIndex {
	return &SignatureIndex{
		Funcs:    make(map[FuncID]*FuncInfo),
		Packages: make(map[string][]FuncID),
	}
}

// Func returns the function by ID, or nil.
func (x *SignatureIndex) Func(id FuncID) *FuncInfo {
	return x.Funcs[id]
}

// Params returns the non-context parameter names of pkgPath.funcName.
func (x *SignatureIndex) Params(pkgPath, funcName string) ([]string, bool) {
	f := x.Funcs[FuncID{PkgPath: pkgPath, Name: funcName}]
	if f == nil {
		return nil, false
	}

	return f.ParamNames(), true
}

// Names returns the sorted function names of a package.
func (x *SignatureIndex) Names(pkgPath string) []string {
	ids := x.Packages[pkgPath]

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}

	sort.Strings(names)

	return names
}
