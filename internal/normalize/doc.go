// Package normalize rewrites caller-supplied argument values into the single
// canonical form an operation expects.
//
// Each declared parameter is an Argument owning up to two constraint
// sources: the primary declaration and constraints derived from
// availability metadata. The Argument merges them into one Pipeline that is
// built once and replayed on every call.
//
// Pipeline stages always run in this order:
//  1. Alias: short tokens to canonical codes ("2t" -> "167"), "all" wildcard expansion
//  2. Type: cast to string, integer, float or a custom type
//  3. Canonical: membership in the allowed value set
//  4. Format: typed value to its output representation
//  5. Arity: One, Many or shape-preserving output
//
// # Merge rules
//
// When both sources are present:
//   - types must be equal (ConflictError otherwise)
//   - every primary value must appear in the availability values (ConsistencyError)
//   - alias tables merge key-wise, first declaration wins on collisions;
//     any other pair of alias sources is a MergeError
//   - the last declared multiplicity wins
package normalize
