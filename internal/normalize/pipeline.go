package normalize

import (
	"slices"
	"strings"
)

// Pipeline is the immutable, ordered chain of stages of one argument.
// It is safe for concurrent use.
type Pipeline struct {
	argument string
	stages   []Stage
}

// Argument returns the name of the argument the pipeline belongs to.
func (p *Pipeline) Argument() string {
	return p.argument
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	return slices.Clone(p.stages)
}

// Apply normalizes raw. A nil raw value (an unset optional argument) is
// returned unchanged.
func (p *Pipeline) Apply(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	v, err := p.Transform(Lift(raw))
	if err != nil {
		return nil, err
	}

	return v.Lower(), nil
}

// Transform runs an already lifted value through every stage.
func (p *Pipeline) Transform(v Value) (Value, error) {
	var err error
	for _, stage := range p.stages {
		v, err = stage.Transform(v)
		if err != nil {
			return Value{}, err
		}
	}

	return v, nil
}

// String lists the stage names, e.g. "alias -> type -> arity(many)".
func (p *Pipeline) String() string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}

	return strings.Join(names, " -> ")
}
