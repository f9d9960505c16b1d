package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrNotConvertible  = errors.New("value is not convertible")
	ErrCategoryBlocked = errors.New("conversion category is not allowed")
)

// maxExactFloatInt is the largest integer magnitude a float64 represents exactly.
const maxExactFloatInt = 1 << 53

func notConvertible(v any, to string) error {
	return fmt.Errorf("%w: %#v (%s) to %s", ErrNotConvertible, v, FromValue(v), to)
}

func blocked(v any, to string, category string) error {
	return fmt.Errorf("%w: %#v to %s requires %s", ErrCategoryBlocked, v, to, category)
}

// ToInt64 converts an integer, float or numeric string to int64.
func ToInt64(v any, allowed CategoryEnum) (int64, error) {
	kind := FromValue(v)

	switch {
	case kind.IsSigned():
		return reflect.ValueOf(v).Int(), nil

	case kind.IsUnsigned():
		u := reflect.ValueOf(v).Uint()
		if u > math.MaxInt64 {
			return 0, notConvertible(v, "int64")
		}

		return int64(u), nil

	case kind.IsFloat():
		return floatToInt64(v, reflect.ValueOf(v).Float(), allowed)

	case kind == KindString:
		if !allowed.Has(CategoryTextNumber) {
			return 0, blocked(v, "int64", "text number")
		}

		s := strings.TrimSpace(reflect.ValueOf(v).String())
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, notConvertible(v, "int64")
		}

		return floatToInt64(v, f, allowed)
	}

	return 0, notConvertible(v, "int64")
}

func floatToInt64(v any, f float64, allowed CategoryEnum) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, notConvertible(v, "int64")
	}

	if f == math.Trunc(f) {
		if !allowed.Has(CategorySafeNumber) {
			return 0, blocked(v, "int64", "safe number")
		}

		return int64(f), nil
	}

	if !allowed.Has(CategoryUnsafeNumber) {
		return 0, blocked(v, "int64", "unsafe number")
	}

	return int64(f), nil
}

// ToFloat64 converts an integer, float or numeric string to float64.
func ToFloat64(v any, allowed CategoryEnum) (float64, error) {
	kind := FromValue(v)

	switch {
	case kind.IsFloat():
		return reflect.ValueOf(v).Float(), nil

	case kind.IsSigned():
		i := reflect.ValueOf(v).Int()
		if err := checkExact(v, i > maxExactFloatInt || i < -maxExactFloatInt, allowed); err != nil {
			return 0, err
		}

		return float64(i), nil

	case kind.IsUnsigned():
		u := reflect.ValueOf(v).Uint()
		if err := checkExact(v, u > maxExactFloatInt, allowed); err != nil {
			return 0, err
		}

		return float64(u), nil

	case kind == KindString:
		if !allowed.Has(CategoryTextNumber) {
			return 0, blocked(v, "float64", "text number")
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(reflect.ValueOf(v).String()), 64)
		if err != nil {
			return 0, notConvertible(v, "float64")
		}

		return f, nil
	}

	return 0, notConvertible(v, "float64")
}

func checkExact(v any, lossy bool, allowed CategoryEnum) error {
	if lossy {
		if !allowed.Has(CategoryUnsafeNumber) {
			return blocked(v, "float64", "unsafe number")
		}

		return nil
	}

	if !allowed.Has(CategorySafeNumber) {
		return blocked(v, "float64", "safe number")
	}

	return nil
}

// ToString converts strings, numbers and fmt.Stringer values to their
// textual form. Floats use the shortest representation, so 131.0 becomes "131".
func ToString(v any, allowed CategoryEnum) (string, error) {
	kind := FromValue(v)

	switch {
	case kind == KindString:
		return reflect.ValueOf(v).String(), nil

	case kind.IsNumber() && !allowed.Has(CategoryTextNumber):
		return "", blocked(v, "string", "text number")

	case kind.IsSigned():
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil

	case kind.IsUnsigned():
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil

	case kind.IsFloat():
		return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'f', -1, kind.Bits()), nil
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}

	return "", notConvertible(v, "string")
}

// Text returns the textual form of v for lookups and messages; values that
// cannot be converted fall back to fmt formatting.
func Text(v any) string {
	if s, err := ToString(v, CategoryAll); err == nil {
		return s
	}

	return fmt.Sprint(v)
}
