package declare

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML declaration file from fsys. Relative
// availability files are read from the same filesystem.
func LoadFile(fsys afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	f.dir = filepath.Dir(path)
	f.fs = fsys

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Operations {
		op := &f.Operations[i]
		if op.Func == "" {
			op.Func = op.Name
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Operation returns the operation called name.
func (f *File) Operation(name string) (*Operation, bool) {
	for i := range f.Operations {
		if f.Operations[i].Name == name {
			return &f.Operations[i], true
		}
	}

	return nil, false
}

func (f *File) filesystem() afero.Fs {
	if f.fs == nil {
		return afero.NewOsFs()
	}

	return f.fs
}

func (f *File) resolve(path string) string {
	if filepath.IsAbs(path) || f.dir == "" {
		return path
	}

	return filepath.Join(f.dir, path)
}
