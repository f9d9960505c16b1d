package catalog

import (
	"fmt"

	"argnorm/internal/binder"
	"argnorm/internal/common"
	"argnorm/primitive"
)

func items(v any) []any {
	switch vv := v.(type) {
	case nil:
		return nil
	case []any:
		return vv
	default:
		return []any{vv}
	}
}

func intsArg(kw binder.Kwargs, name string) ([]int, error) {
	raw := items(kw[name])
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]int, 0, len(raw))
	for _, item := range raw {
		n, err := primitive.ToInt64(item, primitive.CategoryDefault)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, int(n))
	}

	return out, nil
}

func stringsArg(kw binder.Kwargs, name string) ([]string, error) {
	raw := items(kw[name])
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, err := primitive.ToString(item, primitive.CategoryDefault)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, s)
	}

	return out, nil
}

func stringArg(kw binder.Kwargs, name string) (string, error) {
	raw := items(kw[name])
	if common.IsMultiple(raw) {
		return "", fmt.Errorf("%s: expected a single value, got %d", name, len(raw))
	}

	v, ok := common.First(raw)
	if !ok {
		return "", nil
	}

	s, err := primitive.ToString(v, primitive.CategoryDefault)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return s, nil
}
