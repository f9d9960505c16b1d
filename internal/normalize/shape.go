package normalize

import "reflect"

// Shape is the container flavor of a value flowing through a pipeline.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeTuple
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Tuple is an ordered container whose flavor differs from a list. A
// one-element Tuple keeps its flavor through shape-preserving arguments.
type Tuple []any

// Value is a call-time value tagged with its shape. Scalars hold exactly one item.
type Value struct {
	Shape Shape
	Items []any
}

// Scalar wraps a single value.
func Scalar(v any) Value {
	return Value{Shape: ShapeScalar, Items: []any{v}}
}

// Lift classifies raw once: Tuple is tuple-flavored, any other slice or
// array (except []byte) is list-flavored, everything else is a scalar.
func Lift(raw any) Value {
	switch v := raw.(type) {
	case Tuple:
		return Value{Shape: ShapeTuple, Items: append([]any{}, v...)}
	case []any:
		return Value{Shape: ShapeList, Items: append([]any{}, v...)}
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}

		return Value{Shape: ShapeList, Items: items}
	case string, []byte, nil:
		return Scalar(raw)
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}

		return Value{Shape: ShapeList, Items: items}
	default:
		return Scalar(raw)
	}
}

// Lower converts v back into a plain Go value: the item for a scalar,
// []any for a list and Tuple for a tuple.
func (v Value) Lower() any {
	switch v.Shape {
	case ShapeScalar:
		if len(v.Items) == 0 {
			return nil
		}

		return v.Items[0]
	case ShapeTuple:
		return append(Tuple{}, v.Items...)
	default:
		return append([]any{}, v.Items...)
	}
}

// Len returns the number of items.
func (v Value) Len() int {
	return len(v.Items)
}

func (v Value) with(items []any) Value {
	return Value{Shape: v.Shape, Items: items}
}
