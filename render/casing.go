package render

import (
	"strings"
	"unicode"
)

// toSnakeCase lowers an identifier and joins its words with underscores.
// An acronym stays one word: "HTTPSConnection" becomes "https_connection".
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if i > 0 && wordStart(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// wordStart reports whether the upper-case rune at i opens a word. Inside a
// run of capitals only the last one does, and only when lower case follows.
func wordStart(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}
	if !unicode.IsUpper(runes[i-1]) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// toPascalCase converts snake_case or kebab-case to PascalCase
func toPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}

	return result.String()
}

// toScreamingCase converts an identifier to SCREAMING_SNAKE_CASE, the form
// used for include guards.
func toScreamingCase(s string) string {
	return strings.ToUpper(toSnakeCase(s))
}
