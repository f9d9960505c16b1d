package analyze

import (
	"fmt"

	"argnorm/internal/declare"
	"argnorm/internal/diagnostic"
	"argnorm/internal/match"
)

// CheckDeclared compares the declared arguments of every operation with
// the parameters of its Go function. Declared arguments missing from the
// function are errors; undeclared parameters are reported as infos.
func CheckDeclared(index *SignatureIndex, f *declare.File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if f == nil || index == nil {
		res.AddError("nothing_to_check", "declaration file or signature index is nil", "", "")
		return res
	}

	if f.Package == "" {
		res.AddWarning("no_package", "declaration file names no Go package", "", "")
		return res
	}

	for _, op := range f.Operations {
		fn := index.Func(FuncID{PkgPath: f.Package, Name: op.Func})
		if fn == nil {
			res.AddErrorWithSuggestions("func_not_found", fmt.Sprintf("function %s.%s not found", f.Package, op.Func),
				op.Name, "", match.Suggest(op.Func, index.Names(f.Package), 3))
			continue
		}

		declared := make(map[string]bool, len(op.Arguments))
		for _, arg := range op.Arguments {
			declared[arg.Name] = true

			if !fn.HasParam(arg.Name) {
				res.AddErrorWithSuggestions("unknown_parameter", fmt.Sprintf("%s has no parameter %q", fn.ID, arg.Name),
					op.Name, arg.Name, match.Suggest(arg.Name, fn.ParamNames(), 3))
			}
		}

		for _, name := range fn.ParamNames() {
			if !declared[name] {
				res.AddInfo("undeclared_parameter", fmt.Sprintf("parameter %q is not normalized", name), op.Name, name)
			}
		}
	}

	return res
}
