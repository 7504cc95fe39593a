package domain

import "time"

// VerificationCode is the stored form of a code sent to a phone. Only the
// fingerprint of the code is kept.
type VerificationCode struct {
	Phone     string
	CodeHash  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer usable at now. A code is
// valid up to but excluding ExpiresAt.
func (c VerificationCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// IssuedCode is returned to the caller that requested a code.
type IssuedCode struct {
	Phone     string
	Code      string
	ExpiresAt time.Time
}
