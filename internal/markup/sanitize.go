package markup

import "strings"

// Sanitize removes runes that are not allowed in XML 1.0 character data.
// A vertical tab, which Word uses for a manual line break, becomes a
// newline.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\v':
			return '\n'
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		case r >= 0xD800 && r <= 0xDFFF:
			return -1
		}
		return r
	}, s)
}
