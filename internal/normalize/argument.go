package normalize

import (
	"slices"
	"sync"

	"argnorm/internal/logger"
)

// Argument is one declared parameter with its constraint sources.
type Argument struct {
	name    string
	sources []Constraint

	once     sync.Once
	pipeline *Pipeline
	err      error
}

// NewArgument creates an Argument from its sources in declaration order.
// At most one source of each variant is allowed.
func NewArgument(name string, sources ...Constraint) (*Argument, error) {
	if name == "" {
		return nil, &ConfigurationError{Reason: "argument name is empty"}
	}

	seen := make(map[Variant]bool, 2)
	for _, src := range sources {
		if src.Variant != VariantPrimary && src.Variant != VariantAvailability {
			return nil, &ConfigurationError{Argument: name, Reason: "unknown source " + src.Variant.String()}
		}

		if seen[src.Variant] {
			return nil, &ConfigurationError{Argument: name, Reason: "more than one " + src.Variant.String() + " source"}
		}

		seen[src.Variant] = true
	}

	return &Argument{
		name:    name,
		sources: slices.Clone(sources),
	}, nil
}

// MustArgument is like NewArgument but panics on error. Intended for
// package-level declarations.
func MustArgument(name string, sources ...Constraint) *Argument {
	a, err := NewArgument(name, sources...)
	if err != nil {
		panic(err)
	}

	return a
}

// Name returns the parameter name.
func (a *Argument) Name() string {
	return a.name
}

// Sources returns a copy of the constraint sources in declaration order.
func (a *Argument) Sources() []Constraint {
	return slices.Clone(a.sources)
}

func (a *Argument) source(variant Variant) (Constraint, bool) {
	for _, src := range a.sources {
		if src.Variant == variant {
			return src, true
		}
	}

	return Constraint{}, false
}

// ResolvedType returns the argument type, or nil when no source declares one.
func (a *Argument) ResolvedType() (Type, error) {
	primary, _ := a.source(VariantPrimary)
	avail, _ := a.source(VariantAvailability)

	switch {
	case primary.Type != nil && avail.Type != nil:
		if primary.Type.Name() != avail.Type.Name() {
			return nil, &ConflictError{
				Argument:     a.name,
				Primary:      primary.Type.Name(),
				Availability: avail.Type.Name(),
			}
		}

		return primary.Type, nil
	case primary.Type != nil:
		return primary.Type, nil
	default:
		return avail.Type, nil
	}
}

// MergedAliases returns the alias source of the argument, or nil when no
// source declares aliases. Empty tables count as undeclared. The domain is non-nil when the first alias
// source belongs to a Many constraint declaring values; it is what the
// "all" wildcard expands to.
func (a *Argument) MergedAliases() (AliasSource, []string, error) {
	var (
		merged AliasSource
		domain []string
	)

	for _, src := range a.sources {
		if src.Aliases == nil || isEmptyTable(src.Aliases) {
			continue
		}

		if merged == nil {
			merged = src.Aliases
			if table, ok := merged.(AliasTable); ok {
				merged = cloneTable(table)
			}

			if src.Multiple == Many && len(src.Values) > 0 {
				domain = slices.Clone(src.Values)
			}

			continue
		}

		first, firstIsTable := merged.(AliasTable)
		later, laterIsTable := src.Aliases.(AliasTable)
		if !firstIsTable || !laterIsTable {
			return nil, nil, &MergeError{
				Argument: a.name,
				First:    describeAliases(merged),
				Second:   describeAliases(src.Aliases),
			}
		}

		for alias, canonical := range later {
			if _, exists := first[alias]; !exists {
				first[alias] = canonical
			}
		}
	}

	return merged, domain, nil
}

// MergedValues returns the canonical value set. When both sources declare
// values, every primary value must be available and the primary set wins.
// Values are compared in the resolved type, so "1.0" and "1" are the same
// float.
func (a *Argument) MergedValues() ([]string, error) {
	primary, _ := a.source(VariantPrimary)
	avail, _ := a.source(VariantAvailability)

	switch {
	case len(primary.Values) > 0 && len(avail.Values) > 0:
		typ, err := a.ResolvedType()
		if err != nil {
			return nil, err
		}

		allowed := make(map[string]struct{}, len(avail.Values))
		for _, value := range avail.Values {
			_, key, err := canonicalKey(typ, value)
			if err != nil {
				return nil, &ConfigurationError{Argument: a.name, Reason: err.Error()}
			}

			allowed[key] = struct{}{}
		}

		for _, value := range primary.Values {
			_, key, err := canonicalKey(typ, value)
			if err != nil {
				return nil, &ConfigurationError{Argument: a.name, Reason: err.Error()}
			}

			if _, ok := allowed[key]; !ok {
				return nil, &ConsistencyError{
					Argument: a.name,
					Value:    value,
					Allowed:  slices.Clone(avail.Values),
				}
			}
		}

		return slices.Clone(primary.Values), nil
	case len(primary.Values) > 0:
		return slices.Clone(primary.Values), nil
	case len(avail.Values) > 0:
		return slices.Clone(avail.Values), nil
	default:
		return nil, nil
	}
}

// MergedMultiplicity returns the last declared multiplicity. Conflicting
// declarations are not reported.
func (a *Argument) MergedMultiplicity() Multiplicity {
	multiple := Unspecified
	for _, src := range a.sources {
		if src.Multiple != Unspecified {
			multiple = src.Multiple
		}
	}

	return multiple
}

// Pipeline returns the argument pipeline, building it on first use. The
// result, including a build error, is cached.
func (a *Argument) Pipeline() (*Pipeline, error) {
	a.once.Do(func() {
		a.pipeline, a.err = a.build()
		if a.err != nil {
			logger.Debug("pipeline build failed", "argument", a.name, "error", a.err)
		}
	})

	return a.pipeline, a.err
}

func (a *Argument) build() (*Pipeline, error) {
	var stages []Stage

	aliases, domain, err := a.MergedAliases()
	if err != nil {
		return nil, err
	}

	if aliases != nil {
		if ref, ok := aliases.(interface{ check() error }); ok {
			if err := ref.check(); err != nil {
				return nil, &ConfigurationError{Argument: a.name, Reason: err.Error()}
			}
		}

		stages = append(stages, &AliasStage{argument: a.name, aliases: aliases, domain: domain})
	}

	typ, err := a.ResolvedType()
	if err != nil {
		return nil, err
	}

	if typ != nil {
		stages = append(stages, &TypeStage{argument: a.name, typ: typ})
	}

	values, err := a.MergedValues()
	if err != nil {
		return nil, err
	}

	if len(values) > 0 || typ != nil {
		canonical, err := newCanonicalStage(a.name, values, typ)
		if err != nil {
			return nil, err
		}

		stages = append(stages, canonical)
	}

	if typ != nil {
		stages = append(stages, &FormatStage{typ: typ})
	}

	stages = append(stages, &ArityStage{argument: a.name, mode: a.MergedMultiplicity()})

	p := &Pipeline{argument: a.name, stages: stages}
	logger.Debug("pipeline built", "argument", a.name, "type", typeName(typ), "stages", p.String())

	return p, nil
}

func isEmptyTable(src AliasSource) bool {
	table, ok := src.(AliasTable)
	return ok && len(table) == 0
}

func cloneTable(t AliasTable) AliasTable {
	out := make(AliasTable, len(t))
	for k, v := range t {
		out[k] = v
	}

	return out
}
