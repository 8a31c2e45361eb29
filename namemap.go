// File: namemap.go
package config

import (
	"strings"
	"unicode"
)

// MapFieldName converts an identifier-style field name into a normalized
// lookup key: the first character is lower-cased, and every subsequent
// upper-case character becomes an underscore followed by its lower-case
// form. All other characters pass through unchanged.
//
// The conversion is intentionally naive about acronyms: every upper-case
// character in a run gets its own underscore, so "HTTPClient" maps to
// "h_t_t_p_client". Existing consumers depend on these keys; do not
// collapse the runs.
func MapFieldName(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)

	var b strings.Builder
	b.Grow(len(name) + 4)
	b.WriteRune(unicode.ToLower(runes[0]))

	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
