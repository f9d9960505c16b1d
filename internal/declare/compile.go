package declare

import (
	"errors"
	"fmt"
	"slices"

	"argnorm/internal/availability"
	"argnorm/internal/binder"
	"argnorm/internal/logger"
	"argnorm/internal/normalize"
	"argnorm/internal/vocabulary"
)

// ErrInvalid is returned by Compile for a file with error diagnostics.
var ErrInvalid = errors.New("invalid declaration")

// Catalog holds the compiled signatures of a declaration file.
type Catalog struct {
	names        []string
	signatures   map[string]*binder.Signature
	availability map[string]*availability.Availability
	funcs        map[string]string
}

// Operation returns the signature of the named operation.
func (c *Catalog) Operation(name string) (*binder.Signature, bool) {
	sig, ok := c.signatures[name]
	return sig, ok
}

// Operations returns the operation names in declaration order.
func (c *Catalog) Operations() []string {
	return slices.Clone(c.names)
}

// Availability returns the availability of the named operation, or nil.
func (c *Catalog) Availability(name string) *availability.Availability {
	return c.availability[name]
}

// Func returns the Go function name implementing the named operation.
func (c *Catalog) Func(name string) string {
	return c.funcs[name]
}

// Compile validates f and compiles every operation into a signature.
// Vocabulary tables are looked up in reg, or in the default registry when
// reg is nil.
func Compile(f *File, reg *vocabulary.Registry) (*Catalog, error) {
	diags := Validate(f, reg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, diags.Error())
	}

	c := &Catalog{
		signatures:   make(map[string]*binder.Signature, len(f.Operations)),
		availability: make(map[string]*availability.Availability),
		funcs:        make(map[string]string, len(f.Operations)),
	}

	for i := range f.Operations {
		op := &f.Operations[i]

		compiled, err := compileOperation(f, op, reg)
		if err != nil {
			return nil, err
		}

		sig, err := compiled.signature()
		if err != nil {
			return nil, err
		}

		c.names = append(c.names, op.Name)
		c.signatures[op.Name] = sig
		c.funcs[op.Name] = op.Func

		if compiled.avail != nil {
			c.availability[op.Name] = compiled.avail
		}
	}

	logger.Debug("declarations compiled", "operations", len(c.names))

	return c, nil
}

type compiledOperation struct {
	name  string
	args  []*normalize.Argument
	avail *availability.Availability
}

func (c *compiledOperation) signature() (*binder.Signature, error) {
	var opts []binder.Option
	if c.avail != nil {
		opts = append(opts, binder.WithAvailability(c.avail))
	}

	return binder.NewSignature(c.name, c.args, opts...)
}

// compileOperation turns declared arguments into normalize arguments.
// Parameters that only appear in the availability get an argument of their
// own after the declared ones.
func compileOperation(f *File, op *Operation, reg *vocabulary.Registry) (*compiledOperation, error) {
	avail, err := loadAvailability(f, op)
	if err != nil {
		return nil, err
	}

	out := &compiledOperation{name: op.Name, avail: avail}
	declared := make(map[string]bool, len(op.Arguments))

	for _, decl := range op.Arguments {
		var sources []normalize.Constraint

		if !decl.Normalize.IsEmpty() {
			primary, err := primaryConstraint(decl.Normalize, reg)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", op.Name, decl.Name, err)
			}

			sources = append(sources, primary)
		}

		if avail != nil {
			if c, ok := avail.Constraint(decl.Name); ok {
				sources = append(sources, c)
			}
		}

		arg, err := normalize.NewArgument(decl.Name, sources...)
		if err != nil {
			return nil, err
		}

		declared[decl.Name] = true
		out.args = append(out.args, arg)
	}

	if avail != nil {
		for _, name := range avail.Names() {
			if declared[name] {
				continue
			}

			c, _ := avail.Constraint(name)

			arg, err := normalize.NewArgument(name, c)
			if err != nil {
				return nil, err
			}

			out.args = append(out.args, arg)
		}
	}

	return out, nil
}

func loadAvailability(f *File, op *Operation) (*availability.Availability, error) {
	switch {
	case op.AvailabilityFile != "":
		a, err := availability.LoadFile(f.filesystem(), f.resolve(op.AvailabilityFile))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op.Name, err)
		}

		return a, nil
	case len(op.Availability) > 0:
		a, err := availability.New(op.Availability)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op.Name, err)
		}

		return a, nil
	default:
		return nil, nil
	}
}

func primaryConstraint(n NormalizeDecl, reg *vocabulary.Registry) (normalize.Constraint, error) {
	c := normalize.Constraint{
		Variant:  normalize.VariantPrimary,
		Multiple: normalize.MultiplicityOf(n.Multiple),
	}

	if !n.Values.IsEmpty() {
		c.Values = slices.Clone([]string(n.Values))
	}

	if n.Type != "" {
		typ, err := normalize.TypeByName(n.Type, n.Format)
		if err != nil {
			return normalize.Constraint{}, err
		}

		c.Type = typ
	}

	switch {
	case len(n.Aliases.Inline) > 0:
		table := make(normalize.AliasTable, len(n.Aliases.Inline))
		for alias, canonical := range n.Aliases.Inline {
			table[alias] = canonical
		}

		c.Aliases = table
	case n.Aliases.Table != "":
		c.Aliases = normalize.VocabularyRef{Registry: reg, Table: n.Aliases.Table}
	}

	return c, nil
}
