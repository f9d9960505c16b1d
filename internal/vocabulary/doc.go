// Package vocabulary provides the process-wide alias vocabularies used to
// rewrite short caller-facing tokens into canonical codes.
//
// A vocabulary table maps aliases to canonical codes, for example the
// "grib-paramid" table maps "2t" to "167". Tables are loaded on first use,
// exactly once, and are read-only afterwards.
//
// Key capabilities:
//   - Embedded tables shipped with the binary (grib-paramid, grib-shortname, levtype)
//   - Extra tables read from a directory of YAML files
//   - Pass-through lookup: unknown aliases are returned unchanged
//
// # Table format
//
// Each YAML file holds one table named after the file. Keys are canonical
// codes and values list the aliases that resolve to them:
//
//	"167": [2t, 2m-temperature]
//	"131": u
package vocabulary
