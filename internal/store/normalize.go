package store

import "strings"

// NormalizeIdentifier lowercases and trims an email or username so lookups
// and stored values compare consistently. The full email address is
// normalized, never just the local part.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips everything but digits, so "+7 (900) 123-45-67" and
// "79001234567" compare equal.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
