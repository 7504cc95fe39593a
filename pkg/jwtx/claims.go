package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default session lifetimes.
const (
	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Kind distinguishes access tokens from refresh tokens. It travels in the
// "type" claim so a refresh token can never be presented as an access token.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims are the session-token claims shared by the API and its clients.
type Claims struct {
	jwt.RegisteredClaims

	// Phone is the normalized phone number of the subject.
	Phone string `json:"phone,omitempty"`

	// Kind is "access" or "refresh".
	Kind Kind `json:"type"`
}

// NewClaims builds claims for subject valid from now for ttl.
func NewClaims(subject, phone string, kind Kind, ttl time.Duration, issuer string, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Phone: phone,
		Kind:  kind,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer against expected; empty expected skips it.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateKind checks the "type" claim.
func (c *Claims) ValidateKind(want Kind) error {
	if c.Kind != want {
		return ErrWrongKind
	}
	return nil
}

// ValidateExpiry checks exp and nbf against now, allowing leeway for skew.
// A token without exp is rejected.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
