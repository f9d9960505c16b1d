package normalize

import (
	"fmt"

	"argnorm/internal/vocabulary"
)

// Variant identifies where a constraint source comes from.
type Variant int

const (
	// VariantPrimary is the constraint declared on the argument itself.
	VariantPrimary Variant = iota
	// VariantAvailability is the constraint derived from availability metadata.
	VariantAvailability
)

// String returns a human-readable variant name.
func (v Variant) String() string {
	switch v {
	case VariantPrimary:
		return "primary"
	case VariantAvailability:
		return "availability"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Multiplicity states how many values an argument takes.
type Multiplicity int

const (
	// Unspecified keeps the shape the caller used.
	Unspecified Multiplicity = iota
	// One requires a single value.
	One
	// Many always produces a list.
	Many
)

// String returns a human-readable multiplicity name.
func (m Multiplicity) String() string {
	switch m {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return "preserve"
	}
}

// MultiplicityOf maps a declared "multiple" flag to a Multiplicity.
func MultiplicityOf(multiple *bool) Multiplicity {
	switch {
	case multiple == nil:
		return Unspecified
	case *multiple:
		return Many
	default:
		return One
	}
}

// AliasSource resolves an alias to its canonical code.
type AliasSource interface {
	Lookup(alias string) (string, bool)
}

// AliasTable is an inline alias -> canonical mapping. Tables are the only
// alias source that can be merged with another one.
type AliasTable map[string]string

// Lookup implements AliasSource.
func (t AliasTable) Lookup(alias string) (string, bool) {
	canonical, ok := t[alias]
	return canonical, ok
}

func (t AliasTable) String() string {
	return fmt.Sprintf("table(%d aliases)", len(t))
}

// AliasFunc adapts a function to AliasSource.
type AliasFunc func(alias string) (string, bool)

// Lookup implements AliasSource.
func (f AliasFunc) Lookup(alias string) (string, bool) {
	return f(alias)
}

func (f AliasFunc) String() string {
	return "function"
}

// VocabularyRef refers to a named table of a vocabulary registry.
type VocabularyRef struct {
	Registry *vocabulary.Registry
	Table    string
}

// Vocabulary refers to a table of the process-wide vocabulary registry.
func Vocabulary(table string) VocabularyRef {
	return VocabularyRef{Table: table}
}

func (v VocabularyRef) registry() *vocabulary.Registry {
	if v.Registry != nil {
		return v.Registry
	}

	return vocabulary.Default()
}

// Lookup implements AliasSource.
func (v VocabularyRef) Lookup(alias string) (string, bool) {
	canonical, ok, err := v.registry().Lookup(v.Table, alias)
	if err != nil {
		return "", false
	}

	return canonical, ok
}

func (v VocabularyRef) String() string {
	return "vocabulary " + v.Table
}

func (v VocabularyRef) check() error {
	ok, err := v.registry().Has(v.Table)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: %q", vocabulary.ErrUnknownTable, v.Table)
	}

	return nil
}

// Constraint is one source of normalization rules for an argument. Zero
// fields mean "not declared".
type Constraint struct {
	Variant  Variant
	Aliases  AliasSource
	Values   []string
	Type     Type
	Multiple Multiplicity
}

func describeAliases(src AliasSource) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", src)
}
