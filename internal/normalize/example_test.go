package normalize_test

import (
	"errors"
	"fmt"

	"argnorm/internal/normalize"
	"argnorm/internal/vocabulary"
)

func Example() {
	grib := vocabulary.NewRegistry(vocabulary.StaticLoader{
		"grib-paramid": {"u": "131", "v": "132", "2t": "167"},
	})

	param := normalize.MustArgument("param", normalize.Constraint{
		Variant:  normalize.VariantPrimary,
		Type:     normalize.Integer,
		Aliases:  normalize.VocabularyRef{Registry: grib, Table: "grib-paramid"},
		Multiple: normalize.Many,
	})

	p, err := param.Pipeline()
	if err != nil {
		panic(err)
	}

	fmt.Println(p)
	fmt.Println(p.Apply("2t"))
	fmt.Println(p.Apply([]string{"u", "v"}))
	// Output:
	// alias -> type -> canonical -> format -> arity(many)
	// [167] <nil>
	// [131 132] <nil>
}

func Example_consistency() {
	levtype := normalize.MustArgument("levtype",
		normalize.Constraint{Variant: normalize.VariantPrimary, Values: []string{"sfc", "ml"}},
		normalize.Constraint{Variant: normalize.VariantAvailability, Values: []string{"sfc", "pl"}},
	)

	_, err := levtype.Pipeline()
	fmt.Println(errors.Is(err, normalize.ErrConsistency))
	fmt.Println(err)
	// Output:
	// true
	// argument "levtype": inconsistent canonical values: 'ml' is not in [sfc, pl]
}
