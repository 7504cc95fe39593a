package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256SecretLen is the minimum shared-secret length in bytes.
const MinHS256SecretLen = 32

// HS256Signer signs tokens with a shared secret.
type HS256Signer struct {
	kid    string
	secret []byte
}

func newHS256Signer(kid string, secret []byte) (*HS256Signer, error) {
	if len(secret) < MinHS256SecretLen {
		return nil, fmt.Errorf("jwtx: HS256 secret must be at least %d bytes, got %d", MinHS256SecretLen, len(secret))
	}
	return &HS256Signer{kid: kid, secret: append([]byte(nil), secret...)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }
func (s *HS256Signer) KID() string { return s.kid }

// Sign serializes claims into a compact HS256 JWT.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	if s.kid != "" {
		t.Header["kid"] = s.kid
	}
	return t.SignedString(s.secret)
}

// Verifier returns a Verifier for tokens produced by s.
func (s *HS256Signer) Verifier(opts VerifyOptions) Verifier {
	return NewVerifierHS256(s.secret, opts)
}

func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinHS256SecretLen {
		return errors.New("jwtx: HS256 secret too short")
	}
	return nil
}
