package declare

import (
	"github.com/spf13/afero"
)

// File represents the root of a YAML declaration file.
type File struct {
	// Version of the declaration schema.
	Version string `yaml:"version,omitempty"`

	// Package is the import path of the Go package implementing the
	// operations. Optional; used to cross-check argument names.
	Package string `yaml:"package,omitempty"`

	// Operations lists the declared operations.
	Operations []Operation `yaml:"operations" validate:"required,dive"`

	// dir is the directory of the loaded file, used to resolve
	// availability files.
	dir string
	// fs is the filesystem the file was loaded from; nil means the OS.
	fs afero.Fs
}

// Operation declares the normalized arguments of one operation.
type Operation struct {
	// Name of the operation.
	Name string `yaml:"name" validate:"required,identifier"`

	// Func is the Go function implementing the operation.
	Func string `yaml:"func,omitempty" validate:"omitempty,identifier"`

	// Availability lists inline availability combinations.
	Availability []map[string]any `yaml:"availability,omitempty"`

	// AvailabilityFile points to a YAML availability list, relative to the
	// declaration file.
	AvailabilityFile string `yaml:"availability_file,omitempty" validate:"excluded_with=Availability"`

	// Arguments in declaration order.
	Arguments []ArgumentDecl `yaml:"arguments,omitempty" validate:"dive"`
}

// ArgumentDecl declares the rules of one argument.
type ArgumentDecl struct {
	Name      string        `yaml:"name" validate:"required,identifier"`
	Normalize NormalizeDecl `yaml:"normalize,omitempty"`
}

// NormalizeDecl holds the primary constraint of an argument. Empty fields
// are not declared.
type NormalizeDecl struct {
	// Type is one of str, int, float or date.
	Type string `yaml:"type,omitempty" validate:"omitempty,argtype"`

	// Format is the output layout of a date argument.
	Format string `yaml:"format,omitempty" validate:"excluded_unless=Type date"`

	// Values is the canonical value set.
	Values StringOrArray `yaml:"values,omitempty"`

	// Aliases names a vocabulary table or holds an inline table.
	Aliases AliasDecl `yaml:"aliases,omitempty"`

	// Multiple is true for many, false for one, absent to keep the shape.
	Multiple *bool `yaml:"multiple,omitempty"`
}

// IsEmpty returns true if nothing is declared.
func (n NormalizeDecl) IsEmpty() bool {
	return n.Type == "" && n.Values.IsEmpty() && n.Aliases.IsEmpty() && n.Multiple == nil
}

// StringOrArray is a list of strings that can be unmarshaled from a single
// scalar or a sequence of scalars.
type StringOrArray []string

// AliasDecl is either a vocabulary table name or an inline alias table.
type AliasDecl struct {
	// Table is the vocabulary table name.
	Table string
	// Inline maps aliases to canonical values.
	Inline map[string]string
}

// IsEmpty returns true if no aliases are declared.
func (a AliasDecl) IsEmpty() bool {
	return a.Table == "" && len(a.Inline) == 0
}
