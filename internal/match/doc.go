// Package match ranks known names by similarity to an unknown one, for
// "did you mean" hints on unknown operations, parameters, vocabulary
// tables and values.
//
// Key functions:
//   - Fold: normalizes a name for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: returns the closest known names
package match
