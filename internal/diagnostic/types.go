package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"argnorm/internal/common"
)

// Diagnostics holds all diagnostic information from a declaration check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Operation identifies which operation this relates to (if any).
	Operation string
	// Argument identifies which argument this relates to (if any).
	Argument string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
	// Cause is the error the diagnostic was raised for, if any.
	Cause error
}

// Coder is implemented by errors carrying a stable diagnostic code, such
// as the normalization error taxonomy.
type Coder interface {
	Code() string
}

// CodeInvalid is the code of causes that carry none.
const CodeInvalid = "invalid_declaration"

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, operation, argument string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		Operation: operation,
		Argument:  argument,
	})
}

// AddErrorWithSuggestions adds an error diagnostic carrying "did you mean"
// alternatives.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, operation, argument string, suggestions []string) {
	d.AddError(code, message, operation, argument)
	d.Errors[len(d.Errors)-1].Suggestions = suggestions
}

// AddCause adds an error diagnostic for err. The code comes from the first
// error in its chain implementing Coder, or is CodeInvalid.
func (d *Diagnostics) AddCause(err error, operation, argument string) {
	code := CodeInvalid

	var coded Coder
	if errors.As(err, &coded) {
		code = coded.Code()
	}

	d.AddError(code, err.Error(), operation, argument)
	d.Errors[len(d.Errors)-1].Cause = err
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, operation, argument string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		Operation: operation,
		Argument:  argument,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, operation, argument string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:  DiagnosticInfo,
		Code:      code,
		Message:   message,
		Operation: operation,
		Argument:  argument,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if
// valid. It unwraps to the causes of the diagnostics.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return List(slices.Clone(d.Errors))
}

// List is the error form of error diagnostics.
type List []Diagnostic

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, d := range l {
		parts[i] = d.String()
	}

	return strings.Join(parts, "; ")
}

func (l List) Unwrap() []error {
	var causes []error
	for _, d := range l {
		if d.Cause != nil {
			causes = append(causes, d.Cause)
		}
	}

	return causes
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Operation != "" {
		prefix = append(prefix, "["+d.Operation+"]")
	}

	if d.Argument != "" {
		prefix = append(prefix, d.Argument)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
