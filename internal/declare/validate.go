package declare

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"argnorm/internal/diagnostic"
	"argnorm/internal/match"
	"argnorm/internal/normalize"
	"argnorm/internal/vocabulary"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var (
	validateOnce sync.Once
	structValid  *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("identifier", validateIdentifier)
		_ = v.RegisterValidation("argtype", validateArgType)
		structValid = v
	})

	return structValid
}

func validateIdentifier(fl validator.FieldLevel) bool {
	return identifierPattern.MatchString(fl.Field().String())
}

func validateArgType(fl validator.FieldLevel) bool {
	_, err := normalize.TypeByName(fl.Field().String(), "")
	return err == nil
}

// Validate checks a declaration file and reports every problem found as a
// diagnostic. Vocabulary tables are looked up in reg, or in the default
// registry when reg is nil.
func Validate(f *File, reg *vocabulary.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "declaration file is nil", "", "")
		return res
	}

	if reg == nil {
		reg = vocabulary.Default()
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	if len(f.Operations) == 0 {
		res.AddWarning("no_operations", "declaration file has no operations", "", "")
	}

	seenOps := map[string]struct{}{}

	for i := range f.Operations {
		op := &f.Operations[i]

		if op.Name != "" {
			if _, ok := seenOps[op.Name]; ok {
				res.AddError("duplicate_operation", fmt.Sprintf("duplicate operation %q", op.Name), op.Name, "")
				continue
			}

			seenOps[op.Name] = struct{}{}
		}

		if !validateStruct(res, op) {
			continue
		}

		validateOperation(res, f, op, reg)
	}

	return res
}

// validateStruct runs the struct tag rules on one operation.
func validateStruct(res *diagnostic.Diagnostics, op *Operation) bool {
	err := structValidator().Struct(op)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		res.AddCause(err, op.Name, "")
		return false
	}

	for _, fe := range fieldErrs {
		res.AddError("invalid_field", describeFieldError(fe), op.Name, "")
	}

	return false
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "identifier":
		return fmt.Sprintf("%s: %q is not a valid identifier", fe.Namespace(), fe.Value())
	case "argtype":
		return fmt.Sprintf("%s: unknown type %q (expected str, int, float or date)", fe.Namespace(), fe.Value())
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", fe.Namespace(), fe.Param())
	case "excluded_unless":
		return fmt.Sprintf("%s is only allowed when %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag())
	}
}

func validateOperation(res *diagnostic.Diagnostics, f *File, op *Operation, reg *vocabulary.Registry) {
	seenArgs := map[string]struct{}{}

	for _, decl := range op.Arguments {
		if _, ok := seenArgs[decl.Name]; ok {
			res.AddError("duplicate_argument", fmt.Sprintf("duplicate argument %q", decl.Name), op.Name, decl.Name)
			continue
		}

		seenArgs[decl.Name] = struct{}{}

		if table := decl.Normalize.Aliases.Table; table != "" {
			ok, err := reg.Has(table)

			switch {
			case err != nil:
				res.AddError("vocabulary_unavailable", err.Error(), op.Name, decl.Name)
			case !ok:
				tables, _ := reg.Tables()
				res.AddErrorWithSuggestions("unknown_vocabulary", fmt.Sprintf("unknown vocabulary table %q", table),
					op.Name, decl.Name, match.Suggest(table, tables, 3))
			}
		}

		if decl.Normalize.IsEmpty() {
			res.AddInfo("no_rules", "argument declares no normalization rules", op.Name, decl.Name)
		}
	}

	if hasOperationErrors(res, op.Name) {
		return
	}

	compiled, err := compileOperation(f, op, reg)
	if err != nil {
		res.AddCause(err, op.Name, "")
		return
	}

	for _, arg := range compiled.args {
		if _, err := arg.Pipeline(); err != nil {
			res.AddCause(err, op.Name, arg.Name())
		}
	}
}

func hasOperationErrors(res *diagnostic.Diagnostics, op string) bool {
	for _, d := range res.Errors {
		if d.Operation == op {
			return true
		}
	}

	return false
}
