// Package phonex normalizes user-entered phone numbers into the canonical
// "+<digits>" form used as the identity key for accounts and codes.
package phonex

import "strings"

// Normalize keeps digits and a leading '+', rewrites the national trunk
// prefix 8XXXXXXXXXX as +7XXXXXXXXXX, and guarantees exactly one leading
// '+'. Input without any digits normalizes to "".
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()

	digits := strings.TrimLeft(s, "+")
	if digits == "" {
		return ""
	}
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	return "+" + digits
}

// Valid reports whether s is a normalized phone number with a plausible
// E.164 length.
func Valid(s string) bool {
	if !strings.HasPrefix(s, "+") {
		return false
	}
	digits := s[1:]
	if len(digits) < 7 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
