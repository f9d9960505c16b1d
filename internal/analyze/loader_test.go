package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argnorm/catalog"
	"argnorm/internal/declare"
)

const catalogPkg = "argnorm/catalog"

func loadCatalog(t *testing.T) *SignatureIndex {
	t.Helper()

	index, err := NewAnalyzer().LoadPackages(catalogPkg)
	require.NoError(t, err)
	require.NotNil(t, index)

	return index
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	index := loadCatalog(t)

	assert.Contains(t, index.Packages, catalogPkg)
	assert.Equal(t, []string{"Describe", "Operations", "Retrieve"}, index.Names(catalogPkg))

	// Unexported helpers are not indexed.
	assert.Nil(t, index.Func(FuncID{PkgPath: catalogPkg, Name: "intsArg"}))
}

func TestAnalyzer_RetrieveParams(t *testing.T) {
	index := loadCatalog(t)

	fn := index.Func(FuncID{PkgPath: catalogPkg, Name: "Retrieve"})
	require.NotNil(t, fn)
	require.Len(t, fn.Params, 5)

	assert.Equal(t, "ctx", fn.Params[0].Name)
	assert.True(t, fn.Params[0].Context)
	assert.Equal(t, "context.Context", fn.Params[0].Type)

	assert.Equal(t, "param", fn.Params[1].Name)
	assert.Equal(t, "[]int", fn.Params[1].Type)
	assert.False(t, fn.Params[1].Context)

	names, ok := index.Params(catalogPkg, "Retrieve")
	require.True(t, ok)
	assert.Equal(t, []string{"param", "levtype", "levelist", "date"}, names)

	assert.True(t, fn.HasParam("levtype"))
	assert.False(t, fn.HasParam("ctx"))

	_, ok = index.Params(catalogPkg, "Archive")
	assert.False(t, ok)
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("argnorm/no/such/package")
	require.Error(t, err)
}

func TestFuncID_String(t *testing.T) {
	assert.Equal(t, "argnorm/catalog.Retrieve", FuncID{PkgPath: catalogPkg, Name: "Retrieve"}.String())
	assert.Equal(t, "Retrieve", FuncID{Name: "Retrieve"}.String())
}

func TestCheckDeclared(t *testing.T) {
	index := loadCatalog(t)

	f, err := declare.Parse([]byte(`
package: argnorm/catalog
operations:
  - name: retrieve
    func: Retrieve
    arguments:
      - name: param
      - name: levtype
      - name: grid
  - name: archive
    func: Archive
`))
	require.NoError(t, err)

	d := CheckDeclared(index, f)
	require.Len(t, d.Errors, 2)

	assert.Equal(t, "unknown_parameter", d.Errors[0].Code)
	assert.Equal(t, "grid", d.Errors[0].Argument)
	assert.Empty(t, d.Errors[0].Suggestions)
	assert.Equal(t, "func_not_found", d.Errors[1].Code)
	assert.Equal(t, "archive", d.Errors[1].Operation)

	var undeclared []string
	for _, info := range d.Infos {
		undeclared = append(undeclared, info.Argument)
	}

	assert.Equal(t, []string{"levelist", "date"}, undeclared)
}

func TestCheckDeclared_NoPackage(t *testing.T) {
	f, err := declare.Parse([]byte("operations:\n  - name: retrieve\n"))
	require.NoError(t, err)

	d := CheckDeclared(NewSignatureIndex(), f)
	assert.True(t, d.IsValid())
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "no_package", d.Warnings[0].Code)

	assert.True(t, CheckDeclared(nil, f).HasErrors())
}

func TestCheckDeclared_CatalogDeclarations(t *testing.T) {
	index := loadCatalog(t)

	f, err := declare.Parse(catalog.Declarations)
	require.NoError(t, err)

	d := CheckDeclared(index, f)
	assert.True(t, d.IsValid(), "unexpected errors: %v", d.Error())
}

func TestCheckDeclared_Suggestions(t *testing.T) {
	index := loadCatalog(t)

	f, err := declare.Parse([]byte(`
package: argnorm/catalog
operations:
  - name: retrieve
    func: Retreive
  - name: describe
    func: Describe
    arguments:
      - name: parm
`))
	require.NoError(t, err)

	d := CheckDeclared(index, f)
	require.Len(t, d.Errors, 2)

	assert.Equal(t, "func_not_found", d.Errors[0].Code)
	assert.Equal(t, []string{"Retrieve"}, d.Errors[0].Suggestions)
	assert.Equal(t, "unknown_parameter", d.Errors[1].Code)
	assert.Equal(t, []string{"param"}, d.Errors[1].Suggestions)
}
