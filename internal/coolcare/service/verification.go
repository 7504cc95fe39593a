package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/cryptox"
	"github.com/coolcare/coolcare/pkg/phonex"
)

// DefaultCodeTTL is how long a verification code stays usable.
const DefaultCodeTTL = 10 * time.Minute

// VerificationService issues and checks one-time phone codes. It is the
// only place phone numbers are normalized on the code path.
type VerificationService struct {
	Codes store.VerificationCodes
	Clock clock.Clock
	TTL   time.Duration

	// Generate overrides code generation in tests.
	Generate func() (string, error)
}

func (s *VerificationService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultCodeTTL
	}
	return s.TTL
}

// IssueCode creates a fresh code for phone, replacing any earlier one.
func (s *VerificationService) IssueCode(ctx context.Context, phone string) (domain.IssuedCode, error) {
	phone = phonex.Normalize(phone)
	if !phonex.Valid(phone) {
		return domain.IssuedCode{}, ErrInvalidPhone
	}

	generate := s.Generate
	if generate == nil {
		generate = cryptox.GenerateNumericCode
	}
	code, err := generate()
	if err != nil {
		return domain.IssuedCode{}, err
	}

	now := clock.Or(s.Clock).Now().UTC()
	rec := domain.VerificationCode{
		Phone:     phone,
		CodeHash:  cryptox.FingerprintToken(code),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}
	if err := s.Codes.ReplaceVerificationCode(ctx, rec); err != nil {
		return domain.IssuedCode{}, fmt.Errorf("store verification code: %w", err)
	}

	return domain.IssuedCode{Phone: phone, Code: code, ExpiresAt: rec.ExpiresAt}, nil
}

// VerifyCode consumes the matching code. It returns false for unknown,
// wrong and expired codes alike; an expired record is removed as well.
// Storage failures return false with the error.
func (s *VerificationService) VerifyCode(ctx context.Context, phone, code string) (bool, error) {
	phone = phonex.Normalize(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return false, nil
	}

	rec, err := s.Codes.ConsumeVerificationCode(ctx, phone, cryptox.FingerprintToken(code))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume verification code: %w", err)
	}

	if rec.Expired(clock.Or(s.Clock).Now()) {
		return false, nil
	}
	return true, nil
}

// PurgeExpired removes codes that can no longer be used.
func (s *VerificationService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Codes.DeleteExpiredVerificationCodes(ctx, clock.Or(s.Clock).Now().UTC())
}
