package declare

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"argnorm/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts a single scalar or a sequence of scalars; numbers keep their
// literal spelling.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != "" {
			*s = StringOrArray{node.Value}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		arr := make([]string, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected scalar in array, got %v", item.Line, item.Kind)
			}

			arr = append(arr, item.Value)
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// --- AliasDecl YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for AliasDecl.
// Accepts:
//   - Table name: grib-paramid
//   - Inline table: {surface: sfc, 2t: 167}
func (a *AliasDecl) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = AliasDecl{Table: node.Value}

		return nil

	case yaml.MappingNode:
		inline := make(map[string]string, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: alias entries must be scalars", key.Line)
			}

			if _, dup := inline[key.Value]; dup {
				return fmt.Errorf("line %d: alias %q declared twice", key.Line, key.Value)
			}

			inline[key.Value] = value.Value
		}

		*a = AliasDecl{Inline: inline}

		return nil

	default:
		return fmt.Errorf("line %d: expected table name or alias mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for AliasDecl.
func (a AliasDecl) MarshalYAML() (any, error) {
	if len(a.Inline) > 0 {
		return a.Inline, nil
	}

	if a.Table != "" {
		return a.Table, nil
	}

	return nil, nil
}
