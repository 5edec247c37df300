// internal/app/system/accesscode/accesscode.go

// Package accesscode generates the short codes guests present at check-in.
//
// Codes are 6 characters from a 32-character alphabet (uppercase letters and
// digits with 0, O, 1, and I removed so codes survive handwriting and voice
// read-back). 32^6 is ~1.07 billion combinations, which keeps the collision
// rate negligible at event scale while staying typeable.
package accesscode

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
)

// Alphabet is the fixed code alphabet. Visually ambiguous characters are
// excluded; codes are always stored and compared uppercase.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the fixed code length.
const Length = 6

// maxAttempts bounds the uniqueness retry loop.
const maxAttempts = 10

// ErrExhaustedRetries is returned when no collision-free code was found
// within the retry budget. Callers should abort and surface a retryable
// failure; the registration has not been persisted.
var ErrExhaustedRetries = errors.New("accesscode: exhausted retries generating a unique code")

// Generate returns a random code of Length characters from Alphabet.
//
// 32 divides 256, so reducing each random byte mod len(Alphabet) is unbiased.
func Generate() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken,
		// at which point nothing else in the process works either.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf)
}

// IsWellFormed reports whether s has the shape of an access code: exactly
// Length characters, all from Alphabet. Used by check-in search to decide
// whether a query deserves the exact-match fast path.
func IsWellFormed(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Resolve produces a code absent from the store at the moment taken was
// consulted, retrying up to the attempt budget before giving up with
// ErrExhaustedRetries.
//
// The check-then-insert sequence is not atomic: two concurrent registrations
// can both observe a candidate as free. The unique index on the access_code
// field is the backstop; callers treat a duplicate-key insert like an
// exhausted budget.
func Resolve(ctx context.Context, generate func() string, taken func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := generate()
		inUse, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", ErrExhaustedRetries
}
