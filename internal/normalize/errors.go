package normalize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("invalid constraint configuration")
	ErrConflict      = errors.New("conflicting types")
	ErrConsistency   = errors.New("inconsistent canonical values")
	ErrMerge         = errors.New("cannot merge aliases")
	ErrTypeCoercion  = errors.New("cannot coerce value")
	ErrUnknownValue  = errors.New("unknown value")
	ErrInvalidArity  = errors.New("invalid arity")
)

// Error codes reported by Code and used in diagnostics.
const (
	CodeConfiguration = "configuration"
	CodeConflict      = "conflict"
	CodeConsistency   = "consistency"
	CodeMerge         = "merge"
	CodeTypeCoercion  = "type-coercion"
	CodeUnknownValue  = "unknown-value"
	CodeInvalidArity  = "invalid-arity"
)

// ConfigurationError reports a malformed argument declaration.
type ConfigurationError struct {
	Argument string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("argument %q: %s: %s", e.Argument, ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
func (e *ConfigurationError) Code() string  { return CodeConfiguration }

// ConflictError reports two sources declaring different types.
type ConflictError struct {
	Argument     string
	Primary      string
	Availability string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("argument %q: %s: %s and %s", e.Argument, ErrConflict, e.Primary, e.Availability)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
func (e *ConflictError) Code() string  { return CodeConflict }

// ConsistencyError reports a primary value missing from the availability values.
type ConsistencyError struct {
	Argument string
	Value    string
	Allowed  []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("argument %q: %s: '%s' is not in %s",
		e.Argument, ErrConsistency, e.Value, formatSet(e.Allowed))
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }
func (e *ConsistencyError) Code() string  { return CodeConsistency }

// MergeError reports alias sources that cannot be combined.
type MergeError struct {
	Argument string
	First    string
	Second   string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("argument %q: %s %s and %s", e.Argument, ErrMerge, e.First, e.Second)
}

func (e *MergeError) Unwrap() error { return ErrMerge }
func (e *MergeError) Code() string  { return CodeMerge }

// TypeCoercionError reports a value that cannot be cast to the argument type.
type TypeCoercionError struct {
	Argument string
	Value    any
	Type     string
	Err      error
}

func (e *TypeCoercionError) Error() string {
	msg := fmt.Sprintf("argument %q: %s %#v to %s", e.Argument, ErrTypeCoercion, e.Value, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *TypeCoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeCoercion}
	}

	return []error{ErrTypeCoercion, e.Err}
}

func (e *TypeCoercionError) Code() string { return CodeTypeCoercion }

// UnknownValueError reports a value outside the canonical value set.
type UnknownValueError struct {
	Argument string
	Value    any
	Allowed  []string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("argument %q: %s %v, expected one of %s",
		e.Argument, ErrUnknownValue, e.Value, formatSet(e.Allowed))
}

func (e *UnknownValueError) Unwrap() error { return ErrUnknownValue }
func (e *UnknownValueError) Code() string  { return CodeUnknownValue }

// InvalidArityError reports a container of the wrong length for a One argument.
type InvalidArityError struct {
	Argument string
	Length   int
}

func (e *InvalidArityError) Error() string {
	return fmt.Sprintf("argument %q: %s: expected a single value, got %d", e.Argument, ErrInvalidArity, e.Length)
}

func (e *InvalidArityError) Unwrap() error { return ErrInvalidArity }
func (e *InvalidArityError) Code() string  { return CodeInvalidArity }

// Code returns the taxonomy code of err, or "" when err is not a
// normalization error.
func Code(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}

	return ""
}

// IsBuildError reports whether err is raised while building a pipeline,
// i.e. it is a declaration mistake rather than bad call input.
func IsBuildError(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrConsistency) ||
		errors.Is(err, ErrMerge)
}

func formatSet(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}
