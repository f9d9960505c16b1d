package vocabulary

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

var (
	ErrDuplicateAlias = errors.New("alias resolves to more than one canonical code")
	ErrInvalidTable   = errors.New("invalid vocabulary table")
)

// Tables maps a table name to its alias -> canonical code mapping.
type Tables map[string]map[string]string

// Loader supplies vocabulary tables.
type Loader interface {
	Load() (Tables, error)
}

// EmbeddedLoader loads the tables shipped with the binary.
type EmbeddedLoader struct{}

// Load implements Loader.
func (EmbeddedLoader) Load() (Tables, error) {
	return loadDir(afero.FromIOFS{FS: embedded}, "data")
}

// DirLoader loads every *.yaml and *.yml file in Dir as a table.
type DirLoader struct {
	Fs  afero.Fs
	Dir string
}

// Load implements Loader.
func (l DirLoader) Load() (Tables, error) {
	fsys := l.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return loadDir(fsys, l.Dir)
}

// MultiLoader merges the tables of several loaders. For a table present in
// more than one loader, aliases from earlier loaders win.
type MultiLoader []Loader

// Load implements Loader.
func (m MultiLoader) Load() (Tables, error) {
	result := make(Tables)

	for _, l := range m {
		tables, err := l.Load()
		if err != nil {
			return nil, err
		}

		for name, table := range tables {
			merged, ok := result[name]
			if !ok {
				merged = make(map[string]string, len(table))
				result[name] = merged
			}

			for alias, canonical := range table {
				if _, exists := merged[alias]; !exists {
					merged[alias] = canonical
				}
			}
		}
	}

	return result, nil
}

// StaticLoader serves tables held in memory.
type StaticLoader Tables

// Load implements Loader.
func (s StaticLoader) Load() (Tables, error) {
	result := make(Tables, len(s))
	for name, table := range s {
		result[name] = copyTable(table)
	}

	return result, nil
}

func loadDir(fsys afero.Fs, dir string) (Tables, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	tables := make(Tables, len(names))
	for _, name := range names {
		data, err := afero.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read vocabulary %s: %w", name, err)
		}

		table, err := ParseTable(data)
		if err != nil {
			return nil, fmt.Errorf("vocabulary %s: %w", name, err)
		}

		tables[strings.TrimSuffix(name, path.Ext(name))] = table
	}

	return tables, nil
}

// ParseTable parses a YAML table of canonical code -> aliases and returns
// the inverted alias -> canonical code mapping.
func ParseTable(data []byte) (map[string]string, error) {
	var raw yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary YAML: %w", err)
	}

	table := make(map[string]string)
	if raw.Kind == 0 {
		return table, nil
	}

	root := &raw
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected mapping, got %v", ErrInvalidTable, root.Kind)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		canonical := root.Content[i].Value

		aliases, err := decodeAliases(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, canonical, err)
		}

		for _, alias := range aliases {
			if prev, ok := table[alias]; ok && prev != canonical {
				return nil, fmt.Errorf("%w: %q -> %q and %q", ErrDuplicateAlias, alias, prev, canonical)
			}

			table[alias] = canonical
		}
	}

	return table, nil
}

func decodeAliases(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil

	case yaml.SequenceNode:
		aliases := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("expected scalar alias, got %v", item.Kind)
			}

			aliases = append(aliases, item.Value)
		}

		return aliases, nil

	default:
		return nil, fmt.Errorf("expected alias or list of aliases, got %v", node.Kind)
	}
}

func copyTable(table map[string]string) map[string]string {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}

	return out
}
