package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken wraps every failure to decode a stored token.
	ErrMalformedToken = errors.New("malformed token")

	// ErrSessionExpired means the token's exp claim is not in the future.
	ErrSessionExpired = errors.New("session expired")

	// ErrCorruptUser means the cached user record cannot be decoded.
	ErrCorruptUser = errors.New("corrupt cached user")
)

// parser decodes without verifying: the signature belongs to the backend,
// which re-validates every request.
var parser = jwt.NewParser()

// Token is a decoded bearer token. The zero value is "no token".
type Token struct {
	raw       string
	expiresAt time.Time
	subject   string
}

// ParseToken decodes a three-segment JWT whose payload carries an exp claim in
// seconds since the epoch. Any failure wraps ErrMalformedToken.
func ParseToken(raw string) (Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Token{}, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		// Only the payload decides validity; retry without the header.
		if claims, err = payloadClaims(raw); err != nil {
			return Token{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if exp == nil {
		return Token{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	sub, _ := claims.GetSubject()

	return Token{raw: raw, expiresAt: exp.Time, subject: sub}, nil
}

func payloadClaims(raw string) (jwt.MapClaims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token has %d segments, want 3", len(parts))
	}
	seg, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(seg, &claims); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return claims, nil
}

// String returns the raw token as sent in the Authorization header.
func (t Token) String() string { return t.raw }

func (t Token) IsZero() bool { return t.raw == "" }

func (t Token) ExpiresAt() time.Time { return t.expiresAt }

func (t Token) Subject() string { return t.subject }

// ValidAt reports exp*1000 > now in epoch milliseconds.
func (t Token) ValidAt(now time.Time) bool {
	if t.IsZero() {
		return false
	}
	return t.expiresAt.UnixMilli() > now.UnixMilli()
}

// Verdict is the outcome of checking a stored token.
type Verdict int

const (
	VerdictAnonymous Verdict = iota
	VerdictValid
	VerdictExpired
	VerdictMalformed
)

func (v Verdict) String() string {
	switch v {
	case VerdictAnonymous:
		return "anonymous"
	case VerdictValid:
		return "valid"
	case VerdictExpired:
		return "expired"
	case VerdictMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Evaluate classifies a stored token string at the instant now. An empty
// string is an anonymous session, not an error.
func Evaluate(raw string, now time.Time) (Token, Verdict) {
	if strings.TrimSpace(raw) == "" {
		return Token{}, VerdictAnonymous
	}
	tok, err := ParseToken(raw)
	if err != nil {
		return Token{}, VerdictMalformed
	}
	if !tok.ValidAt(now) {
		return tok, VerdictExpired
	}
	return tok, VerdictValid
}
