package match

import (
	"strings"
	"unicode"
)

// Fold lowercases s and drops separators, so that "2m_Temperature",
// "2m-temperature" and "2mTemperature" compare equal.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
