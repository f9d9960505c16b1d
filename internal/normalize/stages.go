package normalize

import (
	"fmt"
	"strings"

	"argnorm/internal/common"
	"argnorm/primitive"
)

// AllValues is the wildcard that expands to every canonical value of a
// Many argument whose aliases come with a value domain.
const AllValues = "all"

// Stage is one transformation step of a pipeline.
type Stage interface {
	Name() string
	Transform(v Value) (Value, error)
}

// AliasStage rewrites aliases to canonical codes. Unknown aliases pass through.
type AliasStage struct {
	argument string
	aliases  AliasSource
	domain   []string
}

// Name implements Stage.
func (s *AliasStage) Name() string { return "alias" }

// Transform implements Stage.
func (s *AliasStage) Transform(v Value) (Value, error) {
	items := make([]any, 0, v.Len())
	expanded := false

	for _, item := range v.Items {
		text, isString := item.(string)
		if !isString {
			text = primitive.Text(item)
		}

		if isString && s.domain != nil && text == AllValues {
			for _, value := range s.domain {
				items = append(items, value)
			}

			expanded = true

			continue
		}

		if canonical, ok := s.aliases.Lookup(text); ok {
			items = append(items, canonical)
			continue
		}

		items = append(items, item)
	}

	out := v.with(items)
	if expanded && out.Shape == ShapeScalar {
		out.Shape = ShapeList
	}

	return out, nil
}

// TypeStage casts every element to the argument type.
type TypeStage struct {
	argument string
	typ      Type
}

// Name implements Stage.
func (s *TypeStage) Name() string { return "type" }

// Transform implements Stage.
func (s *TypeStage) Transform(v Value) (Value, error) {
	items := make([]any, len(v.Items))

	for i, item := range v.Items {
		cast, err := s.typ.Cast(item)
		if err != nil {
			return Value{}, &TypeCoercionError{
				Argument: s.argument,
				Value:    item,
				Type:     s.typ.Name(),
				Err:      err,
			}
		}

		items[i] = cast
	}

	return v.with(items), nil
}

// CanonicalStage checks every element against the canonical value set.
// Declared values are cast to the argument type once, so "1.0" and 1 match
// the same float. String elements also match case-insensitively and take
// the canonical spelling.
type CanonicalStage struct {
	argument string
	values   []string
	typ      Type
	exact    map[string]struct{}
	folded   map[string]any
}

func newCanonicalStage(argument string, values []string, typ Type) (*CanonicalStage, error) {
	s := &CanonicalStage{
		argument: argument,
		values:   values,
		typ:      typ,
		exact:    make(map[string]struct{}, len(values)),
		folded:   make(map[string]any, len(values)),
	}

	for _, value := range values {
		typed, key, err := canonicalKey(typ, value)
		if err != nil {
			return nil, &ConfigurationError{Argument: argument, Reason: err.Error()}
		}

		s.exact[key] = struct{}{}

		folded := strings.ToLower(key)
		if _, taken := s.folded[folded]; !taken {
			s.folded[folded] = typed
		}
	}

	return s, nil
}

// Name implements Stage.
func (s *CanonicalStage) Name() string { return "canonical" }

// Transform implements Stage.
func (s *CanonicalStage) Transform(v Value) (Value, error) {
	if len(s.values) == 0 {
		return v, nil
	}

	items := make([]any, len(v.Items))

	for i, item := range v.Items {
		key := keyOf(s.typ, item)
		if _, ok := s.exact[key]; ok {
			items[i] = item
			continue
		}

		if _, isString := item.(string); isString {
			if canonical, ok := s.folded[strings.ToLower(key)]; ok {
				items[i] = canonical
				continue
			}
		}

		return Value{}, &UnknownValueError{
			Argument: s.argument,
			Value:    item,
			Allowed:  s.values,
		}
	}

	return v.with(items), nil
}

// canonicalKey casts a declared canonical value to typ and returns the
// typed value with its lookup key. Without a type the value is its own key.
func canonicalKey(typ Type, value string) (any, string, error) {
	if typ == nil {
		return value, value, nil
	}

	typed, err := typ.Cast(value)
	if err != nil {
		return nil, "", fmt.Errorf("canonical value %q is not a valid %s: %w", value, typ.Name(), err)
	}

	return typed, keyOf(typ, typed), nil
}

func keyOf(typ Type, item any) string {
	if k, ok := typ.(Keyer); ok {
		return k.Key(item)
	}

	return primitive.Text(item)
}

// FormatStage converts typed elements into their output representation.
type FormatStage struct {
	typ Type
}

// Name implements Stage.
func (s *FormatStage) Name() string { return "format" }

// Transform implements Stage.
func (s *FormatStage) Transform(v Value) (Value, error) {
	items := make([]any, len(v.Items))
	for i, item := range v.Items {
		items[i] = s.typ.Format(item)
	}

	return v.with(items), nil
}

// ArityStage enforces the output shape:
//   - Many: always a list
//   - One: always a scalar, unwrapping one-element containers
//   - Unspecified: scalars stay scalars, one-element containers keep their
//     flavor, any other container becomes a list
type ArityStage struct {
	argument string
	mode     Multiplicity
}

// Name implements Stage.
func (s *ArityStage) Name() string { return "arity(" + s.mode.String() + ")" }

// Transform implements Stage.
func (s *ArityStage) Transform(v Value) (Value, error) {
	switch s.mode {
	case Many:
		return Value{Shape: ShapeList, Items: v.Items}, nil

	case One:
		if v.Shape == ShapeScalar {
			return v, nil
		}

		if !common.IsSingle(v.Items) {
			return Value{}, &InvalidArityError{Argument: s.argument, Length: v.Len()}
		}

		return Scalar(v.Items[0]), nil

	default:
		if v.Shape == ShapeScalar || common.IsSingle(v.Items) {
			return v, nil
		}

		return Value{Shape: ShapeList, Items: v.Items}, nil
	}
}
