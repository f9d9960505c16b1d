// Package diagnostic provides structured errors, warnings and notes
// produced while checking argument declarations.
//
// Key capabilities:
//   - Declaration errors with stable codes (e.g. "consistency", "merge")
//   - Warnings for suspicious but valid declarations
//   - Operation and argument context for every entry
package diagnostic
