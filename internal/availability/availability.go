// Package availability derives argument constraints from availability
// metadata: the list of parameter combinations a data source can serve.
//
//	- {param: [131, 132], levtype: pl, levelist: [500, 850]}
//	- {param: 167, levtype: sfc}
//
// Every parameter yields an availability constraint whose canonical values
// are the values seen for it and whose type is inferred from them.
package availability

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"argnorm/internal/common"
	"argnorm/internal/normalize"
	"argnorm/primitive"
)

var (
	ErrNotAvailable = errors.New("combination not available")
	ErrInvalid      = errors.New("invalid availability")
)

// Combination maps parameter names to the values served together.
type Combination map[string][]string

// Availability is an ordered list of combinations.
type Availability struct {
	combinations []Combination
	names        []string
	values       map[string][]string
	types        map[string]normalize.Type
}

// New builds an Availability from decoded combinations. Values may be
// scalars or lists of scalars.
func New(raw []map[string]any) (*Availability, error) {
	a := &Availability{
		values: make(map[string][]string),
		types:  make(map[string]normalize.Type),
	}

	for i, entry := range raw {
		combo := make(Combination, len(entry))

		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, name := range keys {
			values, err := toStrings(entry[name])
			if err != nil {
				return nil, fmt.Errorf("%w: combination %d, %s: %w", ErrInvalid, i, name, err)
			}

			combo[name] = values

			if _, seen := a.values[name]; !seen {
				a.names = append(a.names, name)
			}

			a.values[name] = common.Distinct(append(a.values[name], values...))
			a.types[name] = widen(a.types[name], inferType(normalize.Lift(entry[name]).Items))
		}

		a.combinations = append(a.combinations, combo)
	}

	return a, nil
}

// Parse parses a YAML list of combinations.
func Parse(data []byte) (*Availability, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse availability YAML: %w", err)
	}

	return New(raw)
}

// LoadFile reads and parses an availability file from fsys.
func LoadFile(fsys afero.Fs, path string) (*Availability, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read availability file %s: %w", path, err)
	}

	return Parse(data)
}

func toStrings(v any) ([]string, error) {
	items := normalize.Lift(v).Items

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			return nil, errors.New("null value")
		}

		s, err := primitive.ToString(item, primitive.CategoryAll)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

// Names returns the parameter names in first-seen order.
func (a *Availability) Names() []string {
	return slices.Clone(a.names)
}

// Len returns the number of combinations.
func (a *Availability) Len() int {
	return len(a.combinations)
}

// Values returns the distinct values of name in first-seen order.
func (a *Availability) Values(name string) []string {
	return slices.Clone(a.values[name])
}

// Constraint derives the availability constraint of name.
func (a *Availability) Constraint(name string) (normalize.Constraint, bool) {
	values, ok := a.values[name]
	if !ok {
		return normalize.Constraint{}, false
	}

	return normalize.Constraint{
		Variant: normalize.VariantAvailability,
		Values:  slices.Clone(values),
		Type:    a.types[name],
	}, true
}

// inferType infers the type of decoded values from their kinds. Quoted
// numbers count as numbers.
func inferType(items []any) normalize.Type {
	var typ normalize.Type
	for _, item := range items {
		typ = widen(typ, itemType(item))
	}

	return typ
}

func itemType(item any) normalize.Type {
	kind := primitive.FromValue(item)

	switch {
	case kind.IsInteger():
		return normalize.Integer
	case kind.IsFloat():
		return normalize.Float
	case kind == primitive.KindString:
		text := primitive.Text(item)
		if _, err := strconv.ParseInt(text, 10, 64); err == nil {
			return normalize.Integer
		}

		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return normalize.Float
		}
	}

	return normalize.String
}

// widen returns the narrowest type holding values of both a and b.
func widen(a, b normalize.Type) normalize.Type {
	switch {
	case a == nil:
		return b
	case b == nil || a == b:
		return a
	case a == normalize.String || b == normalize.String:
		return normalize.String
	default:
		return normalize.Float
	}
}

// Check reports whether request is served by at least one combination.
// Parameters unknown to the availability are ignored.
func (a *Availability) Check(request map[string]any) error {
	if len(a.combinations) == 0 {
		return nil
	}

	wanted := make(map[string][]string)
	for name, v := range request {
		if _, known := a.values[name]; !known || v == nil {
			continue
		}

		values, err := toStrings(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, name, err)
		}

		wanted[name] = values
	}

	for _, combo := range a.combinations {
		if combo.serves(wanted) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrNotAvailable, describe(wanted))
}

func (c Combination) serves(wanted map[string][]string) bool {
	for name, values := range wanted {
		served, ok := c[name]
		if !ok {
			return false
		}

		for _, v := range values {
			if !slices.Contains(served, v) {
				return false
			}
		}
	}

	return true
}

func describe(wanted map[string][]string) string {
	names := make([]string, 0, len(wanted))
	for name := range wanted {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + strings.Join(wanted[name], "/")
	}

	return strings.Join(parts, ", ")
}
