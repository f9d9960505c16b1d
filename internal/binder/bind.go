package binder

import (
	"context"

	"argnorm/internal/logger"
)

// Operation is a callable taking keyword arguments.
type Operation func(ctx context.Context, kw Kwargs) (any, error)

// Bind wraps op so that its arguments are normalized by sig first. All
// pipelines are built here; a declaration error is returned instead of a
// wrapped operation.
func Bind(sig *Signature, op Operation) (Operation, error) {
	if err := sig.Build(); err != nil {
		logger.Debug("bind failed", "operation", sig.Name(), "error", err)
		return nil, err
	}

	return func(ctx context.Context, kw Kwargs) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		normalized, err := sig.Normalize(kw)
		if err != nil {
			return nil, err
		}

		return op(ctx, normalized)
	}, nil
}

// MustBind is like Bind but panics on error.
func MustBind(sig *Signature, op Operation) Operation {
	bound, err := Bind(sig, op)
	if err != nil {
		panic(err)
	}

	return bound
}
