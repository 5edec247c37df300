// internal/app/system/normalize/normalize.go

// Package normalize provides canonical forms for user-supplied identifiers.
// Every write path must normalize before persisting so that lookups and
// uniqueness checks agree regardless of how the value was typed.
package normalize

import (
	"strings"
	"unicode"
)

// Email lowercases and trims an email address. Guest and admin emails are
// stored in this form; the unique index on guests.email depends on it.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Name trims surrounding whitespace and collapses internal runs of spaces.
func Name(n string) string {
	return strings.Join(strings.Fields(n), " ")
}

// Phone keeps a leading '+' and digits, dropping separators and spaces.
func Phone(p string) string {
	p = strings.TrimSpace(p)
	var b strings.Builder
	for i, r := range p {
		if i == 0 && r == '+' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Query uppercases and trims a check-in search query. Access codes are
// stored uppercase, so the code fast path compares in this form.
func Query(q string) string {
	return strings.ToUpper(strings.TrimSpace(q))
}
