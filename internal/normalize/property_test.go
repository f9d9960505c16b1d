package normalize

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func scalarGen() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.SampledFrom([]any{"u", "v", "2t", "131", "167"}),
		rapid.Map(rapid.IntRange(0, 100000), func(i int) any { return i }),
		rapid.Map(rapid.IntRange(0, 100000), func(i int) any { return strconv.Itoa(i) }),
	)
}

func mustApply(rt *rapid.T, p *Pipeline, input any) any {
	got, err := p.Apply(input)
	if err != nil {
		rt.Fatalf("Apply(%#v): %v", input, err)
	}

	return got
}

func TestProperty_OneArity(t *testing.T) {
	p := gribPipeline(t, Integer, One)

	rapid.Check(t, func(rt *rapid.T) {
		x := scalarGen().Draw(rt, "x")
		y := scalarGen().Draw(rt, "y")

		want := mustApply(rt, p, x)
		if got := mustApply(rt, p, []any{x}); !reflect.DeepEqual(want, got) {
			rt.Fatalf("Apply([x]) = %#v, want %#v", got, want)
		}

		if got := mustApply(rt, p, Tuple{x}); !reflect.DeepEqual(want, got) {
			rt.Fatalf("Apply((x,)) = %#v, want %#v", got, want)
		}

		for _, bad := range []any{[]any{}, Tuple{}, []any{x, y}, Tuple{x, y}} {
			if _, err := p.Apply(bad); !errors.Is(err, ErrInvalidArity) {
				rt.Fatalf("Apply(%#v) error = %v, want invalid arity", bad, err)
			}
		}
	})
}

func TestProperty_ManyArity(t *testing.T) {
	one := gribPipeline(t, Integer, One)
	many := gribPipeline(t, Integer, Many)

	rapid.Check(t, func(rt *rapid.T) {
		x := scalarGen().Draw(rt, "x")

		want := []any{mustApply(rt, one, x)}
		if got := mustApply(rt, many, x); !reflect.DeepEqual(want, got) {
			rt.Fatalf("Apply(x) = %#v, want %#v", got, want)
		}

		if got := mustApply(rt, many, []any{}); !reflect.DeepEqual([]any{}, got) {
			rt.Fatalf("Apply([]) = %#v, want []", got)
		}
	})
}

func TestProperty_PreserveArity(t *testing.T) {
	p := gribPipeline(t, String, Unspecified)

	rapid.Check(t, func(rt *rapid.T) {
		x := scalarGen().Draw(rt, "x")
		y := scalarGen().Draw(rt, "y")

		if got, ok := mustApply(rt, p, Tuple{x}).(Tuple); !ok || len(got) != 1 {
			rt.Fatalf("Apply((x,)) = %#v, want one-element tuple", got)
		}

		if got, ok := mustApply(rt, p, []any{x}).([]any); !ok || len(got) != 1 {
			rt.Fatalf("Apply([x]) = %#v, want one-element list", got)
		}

		for _, pair := range []any{Tuple{x, y}, []any{x, y}} {
			if got, ok := mustApply(rt, p, pair).([]any); !ok || len(got) != 2 {
				rt.Fatalf("Apply(%#v) = %#v, want two-element list", pair, got)
			}
		}

		for _, empty := range []any{Tuple{}, []any{}} {
			if got, ok := mustApply(rt, p, empty).([]any); !ok || len(got) != 0 {
				rt.Fatalf("Apply(%#v) = %#v, want empty list", empty, got)
			}
		}

		if _, isScalar := mustApply(rt, p, x).(string); !isScalar {
			rt.Fatalf("Apply(x) did not stay a scalar")
		}
	})
}

func TestProperty_CanonicalRoundTrip(t *testing.T) {
	values := []string{"131", "132", "167", "sfc", "pl"}
	arg := MustArgument("x", Constraint{
		Variant: VariantPrimary,
		Values:  values,
		Aliases: AliasTable{"u": "131", "v": "132", "2t": "167", "surface": "sfc"},
		Type:    String,
	})

	p, err := arg.Pipeline()
	if err != nil {
		t.Fatal(err)
	}

	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.SampledFrom(values).Draw(rt, "canonical")

		if got := mustApply(rt, p, v); got != v {
			rt.Fatalf("Apply(%q) = %#v, want unchanged", v, got)
		}

		once := mustApply(rt, p, rapid.SampledFrom([]string{"u", "v", "2t", "surface"}).Draw(rt, "alias"))
		if twice := mustApply(rt, p, once); twice != once {
			rt.Fatalf("Apply not idempotent: %#v -> %#v", once, twice)
		}
	})
}

func TestProperty_TypedCanonicalRoundTrip(t *testing.T) {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		typ    Type
		render func(i int) string
	}{
		{"integer", Integer, func(i int) string { return fmt.Sprintf("%05d", i) }},
		{"float", Float, func(i int) string { return strconv.FormatFloat(float64(i)/4, 'f', 2, 64) }},
		{"date", DateType{Layout: "20060102"}, func(i int) string { return day.AddDate(0, 0, i).Format("20060102") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				ids := rapid.SliceOfNDistinct(rapid.IntRange(0, 5000), 1, 8, rapid.ID[int]).Draw(rt, "ids")

				values := make([]string, len(ids))
				for i, id := range ids {
					values[i] = tt.render(id)
				}

				p, err := MustArgument("x", Constraint{Variant: VariantPrimary, Type: tt.typ, Values: values}).Pipeline()
				if err != nil {
					rt.Fatalf("Pipeline: %v", err)
				}

				v := rapid.SampledFrom(values).Draw(rt, "canonical")

				cast, err := tt.typ.Cast(v)
				if err != nil {
					rt.Fatalf("Cast(%q): %v", v, err)
				}

				once := mustApply(rt, p, v)
				if want := tt.typ.Format(cast); !reflect.DeepEqual(once, want) {
					rt.Fatalf("Apply(%q) = %#v, want %#v", v, once, want)
				}

				if twice := mustApply(rt, p, once); !reflect.DeepEqual(twice, once) {
					rt.Fatalf("Apply not idempotent: %#v -> %#v", once, twice)
				}
			})
		})
	}
}
