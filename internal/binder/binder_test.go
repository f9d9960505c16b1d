package binder

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argnorm/internal/logger"
	"argnorm/internal/normalize"
)

func retrieveSignature(t *testing.T, opts ...Option) *Signature {
	t.Helper()

	param := normalize.MustArgument("param", normalize.Constraint{
		Variant:  normalize.VariantPrimary,
		Aliases:  normalize.AliasTable{"u": "131", "v": "132", "2t": "167"},
		Type:     normalize.Integer,
		Multiple: normalize.Many,
	})
	levtype := normalize.MustArgument("levtype", normalize.Constraint{
		Variant: normalize.VariantPrimary,
		Values:  []string{"sfc", "pl", "ml"},
		Aliases: normalize.AliasTable{"surface": "sfc"},
	})

	sig, err := NewSignature("retrieve", []*normalize.Argument{param, levtype}, opts...)
	require.NoError(t, err)

	return sig
}

func echo(_ context.Context, kw Kwargs) (any, error) {
	return kw, nil
}

func TestNewSignature(t *testing.T) {
	sig := retrieveSignature(t)

	assert.Equal(t, "retrieve", sig.Name())
	assert.Equal(t, []string{"param", "levtype"}, sig.Names())
	assert.Equal(t, []string{"param", "levtype"}, sig.Params())
	assert.Len(t, sig.Arguments(), 2)

	arg, ok := sig.Argument("levtype")
	require.True(t, ok)
	assert.Equal(t, "levtype", arg.Name())

	_, ok = sig.Argument("date")
	assert.False(t, ok)
}

func TestNewSignature_Duplicate(t *testing.T) {
	a := normalize.MustArgument("param")
	b := normalize.MustArgument("param")

	_, err := NewSignature("retrieve", []*normalize.Argument{a, b})
	require.ErrorIs(t, err, ErrDuplicateArgument)
}

func TestSignature_Normalize(t *testing.T) {
	sig := retrieveSignature(t)

	input := Kwargs{"param": "2t", "levtype": "surface", "target": "out.grib"}

	got, err := sig.Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, Kwargs{"param": []any{167}, "levtype": "sfc", "target": "out.grib"}, got)
	assert.Equal(t, "2t", input["param"], "input must not be modified")
}

func TestSignature_NormalizeMissingArgumentsSkipped(t *testing.T) {
	got, err := retrieveSignature(t).Normalize(Kwargs{"levtype": "PL"})
	require.NoError(t, err)
	assert.Equal(t, Kwargs{"levtype": "pl"}, got)

	got, err = retrieveSignature(t).Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSignature_NormalizeErrors(t *testing.T) {
	sig := retrieveSignature(t)

	tests := []struct {
		name   string
		input  Kwargs
		target error
		arg    string
	}{
		{"type coercion", Kwargs{"param": "unknown"}, normalize.ErrTypeCoercion, "param"},
		{"unknown value", Kwargs{"levtype": "pt"}, normalize.ErrUnknownValue, "levtype"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sig.Normalize(tt.input)
			require.ErrorIs(t, err, tt.target)

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, "retrieve", argErr.Operation)
			assert.Equal(t, tt.arg, argErr.Argument)
			assert.Contains(t, err.Error(), `normalize "`+tt.arg+`"`)
		})
	}
}

type checkerFunc func(map[string]any) error

func (f checkerFunc) Check(request map[string]any) error { return f(request) }

func TestSignature_WithAvailability(t *testing.T) {
	errNope := errors.New("nope")

	var seen map[string]any

	sig := retrieveSignature(t, WithAvailability(checkerFunc(func(req map[string]any) error {
		seen = req
		if req["levtype"] == "ml" {
			return errNope
		}

		return nil
	})))

	_, err := sig.Normalize(Kwargs{"param": "u", "levtype": "surface"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"param": []any{131}, "levtype": "sfc"}, seen)

	_, err = sig.Normalize(Kwargs{"levtype": "ml"})
	require.ErrorIs(t, err, errNope)
}

func TestSignature_Kwargs(t *testing.T) {
	sig := retrieveSignature(t, WithParams("levtype", "param", "target"))

	got, err := sig.Kwargs([]any{"sfc", "2t"}, Kwargs{"target": "x"})
	require.NoError(t, err)
	assert.Equal(t, Kwargs{"levtype": "sfc", "param": "2t", "target": "x"}, got)

	_, err = sig.Kwargs([]any{"sfc", "2t", "x", "y"}, nil)
	require.ErrorIs(t, err, ErrTooManyArguments)

	_, err = sig.Kwargs([]any{"sfc"}, Kwargs{"levtype": "pl"})
	require.ErrorIs(t, err, ErrArgumentTwice)
}

func TestBind(t *testing.T) {
	op, err := Bind(retrieveSignature(t), echo)
	require.NoError(t, err)

	got, err := op(context.Background(), Kwargs{"param": []any{"u", "v"}, "levtype": "SFC"})
	require.NoError(t, err)
	assert.Equal(t, Kwargs{"param": []any{131, 132}, "levtype": "sfc"}, got)

	_, err = op(context.Background(), Kwargs{"param": []any{"u", "w"}})
	require.ErrorIs(t, err, normalize.ErrTypeCoercion)
}

func TestBind_CanceledContext(t *testing.T) {
	called := false
	op, err := Bind(retrieveSignature(t), func(context.Context, Kwargs) (any, error) {
		called = true
		return nil, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = op(ctx, Kwargs{})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestBind_DeclarationErrorsSurfaceAtBindTime(t *testing.T) {
	conflicting := normalize.MustArgument("level",
		normalize.Constraint{Variant: normalize.VariantPrimary, Type: normalize.Integer},
		normalize.Constraint{Variant: normalize.VariantAvailability, Type: normalize.String},
	)

	sig, err := NewSignature("retrieve", []*normalize.Argument{conflicting})
	require.NoError(t, err)

	op, err := Bind(sig, echo)
	require.ErrorIs(t, err, normalize.ErrConflict)
	assert.Nil(t, op)
	assert.True(t, normalize.IsBuildError(err))

	assert.Panics(t, func() { MustBind(sig, echo) })
}

func TestBind_ErrorIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(&logger.Config{Level: logger.InfoLevel, Output: &buf})
	t.Cleanup(func() { logger.Init(&logger.Config{Level: logger.WarnLevel, Output: os.Stderr}) })

	conflicting := normalize.MustArgument("level",
		normalize.Constraint{Variant: normalize.VariantPrimary, Type: normalize.Integer},
		normalize.Constraint{Variant: normalize.VariantAvailability, Type: normalize.String},
	)

	sig, err := NewSignature("retrieve", []*normalize.Argument{conflicting})
	require.NoError(t, err)

	_, err = Bind(sig, echo)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}
