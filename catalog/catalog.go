// Package catalog is a small set of data-access operations whose arguments
// are normalized by the declarations in argnorm.yaml.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"argnorm/internal/binder"
	"argnorm/internal/vocabulary"
)

// Declarations holds the normalization rules of the operations below.
//
//go:embed argnorm.yaml
var Declarations []byte

var ErrEmptyRequest = errors.New("empty request")

// Request is a validated retrieval request.
type Request struct {
	Param    []int    `json:"param"`
	Levtype  string   `json:"levtype,omitempty"`
	Levelist []int    `json:"levelist,omitempty"`
	Date     []string `json:"date,omitempty"`
}

// Retrieve builds a retrieval request. Arguments arrive normalized: param
// and levelist as numeric codes, date as YYYYMMDD strings.
func Retrieve(ctx context.Context, param []int, levtype string, levelist []int, date []string) (*Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(param) == 0 {
		return nil, fmt.Errorf("%w: no param", ErrEmptyRequest)
	}

	return &Request{
		Param:    param,
		Levtype:  levtype,
		Levelist: levelist,
		Date:     date,
	}, nil
}

// Description names a GRIB parameter.
type Description struct {
	ShortName string `json:"shortName"`
	ParamID   int    `json:"paramId"`
}

// Describe resolves a GRIB short name to its parameter id, using the
// vocabulary registry carried by ctx.
func Describe(ctx context.Context, param string) (*Description, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(vocabulary.FromContext(ctx).Unalias("grib-paramid", param))
	if err != nil {
		return nil, fmt.Errorf("no parameter id for %q", param)
	}

	return &Description{ShortName: param, ParamID: id}, nil
}

// Operations returns keyword adapters for the operations, keyed by
// declared operation name.
func Operations() map[string]binder.Operation {
	return map[string]binder.Operation{
		"retrieve": func(ctx context.Context, kw binder.Kwargs) (any, error) {
			param, err := intsArg(kw, "param")
			if err != nil {
				return nil, err
			}

			levelist, err := intsArg(kw, "levelist")
			if err != nil {
				return nil, err
			}

			date, err := stringsArg(kw, "date")
			if err != nil {
				return nil, err
			}

			levtype, err := stringArg(kw, "levtype")
			if err != nil {
				return nil, err
			}

			return Retrieve(ctx, param, levtype, levelist, date)
		},
		"describe": func(ctx context.Context, kw binder.Kwargs) (any, error) {
			param, err := stringArg(kw, "param")
			if err != nil {
				return nil, err
			}

			return Describe(ctx, param)
		},
	}
}
