package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"argnorm/primitive"
)

// Type is the target representation of an argument.
//
// Cast turns a raw element into the typed value, Format turns a typed value
// into the form handed to the operation. Two types are the same type when
// their names are equal.
type Type interface {
	Name() string
	Cast(v any) (any, error)
	Format(v any) any
}

// Keyer is implemented by types whose typed values need a custom textual key
// when checked against a canonical value set.
type Keyer interface {
	Key(v any) string
}

var (
	String  Type = stringType{}
	Integer Type = integerType{}
	Float   Type = floatType{}
)

var ErrUnknownType = errors.New("unknown type")

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Cast(v any) (any, error) {
	return primitive.ToString(v, primitive.CategoryDefault)
}

func (stringType) Format(v any) any { return v }

type integerType struct{}

func (integerType) Name() string { return "integer" }

func (integerType) Cast(v any) (any, error) {
	i, err := primitive.ToInt64(v, primitive.CategoryDefault)
	if err != nil {
		return nil, err
	}

	return int(i), nil
}

func (integerType) Format(v any) any { return v }

type floatType struct{}

func (floatType) Name() string { return "float" }

func (floatType) Cast(v any) (any, error) {
	return primitive.ToFloat64(v, primitive.CategoryDefault)
}

func (floatType) Format(v any) any { return v }

// CustomType adapts a domain type exposing a string constructor.
type CustomType struct {
	TypeName string
	// Parse builds the typed value from its canonical string form.
	Parse func(string) (any, error)
	// Accept reports whether v already is a typed value. Optional.
	Accept func(v any) bool
	// Render converts a typed value into its output form. Optional.
	Render func(v any) any
}

// Name implements Type.
func (c CustomType) Name() string { return c.TypeName }

// Cast implements Type.
func (c CustomType) Cast(v any) (any, error) {
	if c.Accept != nil && c.Accept(v) {
		return v, nil
	}

	s, err := primitive.ToString(v, primitive.CategoryDefault)
	if err != nil {
		return nil, err
	}

	return c.Parse(s)
}

// Format implements Type.
func (c CustomType) Format(v any) any {
	if c.Render == nil {
		return v
	}

	return c.Render(v)
}

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DateType parses calendar dates. With an empty Layout the output is the
// time.Time itself, otherwise the date rendered with Layout.
type DateType struct {
	Layout string
}

// Name implements Type.
func (d DateType) Name() string {
	if d.Layout == "" {
		return "date"
	}

	return "date(" + d.Layout + ")"
}

// Cast implements Type. Integers are read as YYYYMMDD.
func (d DateType) Cast(v any) (any, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}

	s, err := primitive.ToString(v, primitive.CategoryDefault)
	if err != nil {
		return nil, err
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("unrecognised date %q", s)
}

// Format implements Type.
func (d DateType) Format(v any) any {
	t, ok := v.(time.Time)
	if !ok || d.Layout == "" {
		return v
	}

	return t.Format(d.Layout)
}

// Key implements Keyer.
func (d DateType) Key(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}

	return primitive.Text(v)
}

// TypeByName resolves a declared type name. For "date", format is the
// output layout; it is ignored for the other types.
func TypeByName(name, format string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "str", "string":
		return String, nil
	case "int", "integer":
		return Integer, nil
	case "float", "float64":
		return Float, nil
	case "date":
		return DateType{Layout: format}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func typeName(t Type) string {
	if t == nil {
		return "none"
	}

	return t.Name()
}
