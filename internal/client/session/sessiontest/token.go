// Package sessiontest builds bearer tokens for tests.
package sessiontest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("test-signing-key")

// Token returns an HS256-signed token for sub that expires at exp.
func Token(t testing.TB, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString(signingKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// TokenWithoutExp returns a well-formed token that carries no exp claim.
func TokenWithoutExp(t testing.TB, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	s, err := tok.SignedString(signingKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
