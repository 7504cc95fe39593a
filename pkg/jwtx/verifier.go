package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifierSource is implemented by signers that can hand out a matching
// Verifier.
type VerifierSource interface {
	Verifier(opts VerifyOptions) Verifier
}

// VerifyOptions captures expectations shared by all verifiers.
type VerifyOptions struct {
	// Issuer the token must carry. Empty means "don't care".
	Issuer string

	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration

	// Now supplies the validation time. Defaults to time.Now.
	Now func() time.Time
}

func (o VerifyOptions) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrWrongKind    = errors.New("jwtx: wrong token type")
)

type keyVerifier struct {
	method jwt.SigningMethod
	key    any
	opts   VerifyOptions
}

// NewVerifierHS256 verifies tokens signed with the shared secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) Verifier {
	return &keyVerifier{method: jwt.SigningMethodHS256, key: append([]byte(nil), secret...), opts: opts}
}

// NewVerifierEdDSA verifies tokens signed by the private half of pub.
func NewVerifierEdDSA(pub ed25519.PublicKey, opts VerifyOptions) Verifier {
	return &keyVerifier{method: jwt.SigningMethodEdDSA, key: pub, opts: opts}
}

// Verify checks signature, algorithm, issuer, exp and nbf. The "type" claim
// is left to the caller.
func (v *keyVerifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithTimeFunc(v.opts.now),
		jwt.WithLeeway(v.opts.Leeway),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != v.method.Alg() {
			return nil, ErrAlgMismatch
		}
		return v.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.opts.now(), v.opts.Leeway); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, ErrAlgMismatch), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidClaims):
		return ErrInvalidClaim
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
