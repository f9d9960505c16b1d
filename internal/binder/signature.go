package binder

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"argnorm/internal/logger"
	"argnorm/internal/normalize"
)

var (
	ErrDuplicateArgument = errors.New("duplicate argument")
	ErrTooManyArguments  = errors.New("too many positional arguments")
	ErrArgumentTwice     = errors.New("argument given twice")
)

// Kwargs holds keyword arguments by parameter name.
type Kwargs map[string]any

// Clone returns a shallow copy of k.
func (k Kwargs) Clone() Kwargs {
	if k == nil {
		return Kwargs{}
	}

	return maps.Clone(k)
}

// Checker validates a fully normalized request.
type Checker interface {
	Check(request map[string]any) error
}

// Signature is the ordered set of normalized arguments of one operation.
type Signature struct {
	name    string
	args    []*normalize.Argument
	index   map[string]*normalize.Argument
	params  []string
	checker Checker
}

// Option configures a Signature.
type Option func(*Signature)

// WithAvailability checks every normalized request against c.
func WithAvailability(c Checker) Option {
	return func(s *Signature) {
		s.checker = c
	}
}

// WithParams sets the positional parameter order used by Kwargs.
// Without it the argument declaration order is used.
func WithParams(names ...string) Option {
	return func(s *Signature) {
		s.params = slices.Clone(names)
	}
}

// NewSignature creates a Signature. Argument names must be unique.
func NewSignature(name string, args []*normalize.Argument, opts ...Option) (*Signature, error) {
	s := &Signature{
		name:  name,
		args:  slices.Clone(args),
		index: make(map[string]*normalize.Argument, len(args)),
	}

	for _, arg := range args {
		if _, exists := s.index[arg.Name()]; exists {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateArgument, name, arg.Name())
		}

		s.index[arg.Name()] = arg
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.params == nil {
		s.params = s.Names()
	}

	return s, nil
}

// Name returns the operation name.
func (s *Signature) Name() string {
	return s.name
}

// Arguments returns the arguments in declaration order.
func (s *Signature) Arguments() []*normalize.Argument {
	return slices.Clone(s.args)
}

// Argument returns the argument called name.
func (s *Signature) Argument(name string) (*normalize.Argument, bool) {
	arg, ok := s.index[name]
	return arg, ok
}

// Names returns the argument names in declaration order.
func (s *Signature) Names() []string {
	names := make([]string, len(s.args))
	for i, arg := range s.args {
		names[i] = arg.Name()
	}

	return names
}

// Params returns the positional parameter order.
func (s *Signature) Params() []string {
	return slices.Clone(s.params)
}

// Build builds every pipeline and returns the first error.
func (s *Signature) Build() error {
	for _, arg := range s.args {
		if _, err := arg.Pipeline(); err != nil {
			return &ArgumentError{Operation: s.name, Argument: arg.Name(), Err: err}
		}
	}

	return nil
}

// Kwargs merges positional values into kw following the parameter order.
func (s *Signature) Kwargs(positional []any, kw Kwargs) (Kwargs, error) {
	if len(positional) > len(s.params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrTooManyArguments, s.name, len(s.params), len(positional))
	}

	out := kw.Clone()
	for i, v := range positional {
		name := s.params[i]
		if _, exists := out[name]; exists {
			return nil, fmt.Errorf("%w: %s.%s", ErrArgumentTwice, s.name, name)
		}

		out[name] = v
	}

	return out, nil
}

// Normalize returns a copy of kw where every declared argument present has
// been replaced by its pipeline output.
func (s *Signature) Normalize(kw Kwargs) (Kwargs, error) {
	out := kw.Clone()

	for _, arg := range s.args {
		raw, present := out[arg.Name()]
		if !present {
			continue
		}

		p, err := arg.Pipeline()
		if err != nil {
			return nil, &ArgumentError{Operation: s.name, Argument: arg.Name(), Err: err}
		}

		v, err := p.Apply(raw)
		if err != nil {
			return nil, &ArgumentError{Operation: s.name, Argument: arg.Name(), Err: err}
		}

		out[arg.Name()] = v
	}

	if s.checker != nil {
		if err := s.checker.Check(out); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}

	logger.Debug("arguments normalized", "operation", s.name, "count", len(out))

	return out, nil
}

// ArgumentError reports which argument of which operation failed.
type ArgumentError struct {
	Operation string
	Argument  string
	Err       error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: normalize %q: %v", e.Operation, e.Argument, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }
