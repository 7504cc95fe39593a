package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/idx"
	"github.com/coolcare/coolcare/pkg/phonex"
	"github.com/coolcare/coolcare/pkg/slogx"
)

// SendCodeResult is returned to the client after a code was issued.
type SendCodeResult struct {
	Phone     string
	DebugCode string // only set when debug codes are exposed
}

// AuthService is the phone sign-in flow on top of VerificationService and
// SessionService.
type AuthService struct {
	Store        store.Store
	Verification *VerificationService
	Sessions     *SessionService
	SMS          SMSSender
	Clock        clock.Clock
	ExposeCodes  bool
}

// SendCode registers the phone on first contact and sends it a code.
func (s *AuthService) SendCode(ctx context.Context, rawPhone string) (SendCodeResult, error) {
	l := slogx.FromContext(ctx)

	phone := phonex.Normalize(rawPhone)
	if !phonex.Valid(phone) {
		return SendCodeResult{}, ErrInvalidPhone
	}

	if _, err := s.ensureUser(ctx, phone); err != nil {
		return SendCodeResult{}, err
	}

	issued, err := s.Verification.IssueCode(ctx, phone)
	if err != nil {
		return SendCodeResult{}, err
	}

	sms := s.SMS
	if sms == nil {
		sms = LogSMSSender{}
	}
	if err := sms.SendCode(ctx, issued.Phone, issued.Code); err != nil {
		return SendCodeResult{}, fmt.Errorf("deliver code: %w", err)
	}

	l.Info("verification code sent", slog.String("phone", issued.Phone))

	res := SendCodeResult{Phone: issued.Phone}
	if s.ExposeCodes {
		res.DebugCode = issued.Code
	}
	return res, nil
}

// ensureUser returns the user for phone, creating a master account if none
// exists. A concurrent creation is resolved by reading the winner's row.
func (s *AuthService) ensureUser(ctx context.Context, phone string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByPhone(ctx, phone)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	now := clock.Or(s.Clock).Now().UTC()
	u = domain.User{
		ID:        idx.NewAt(now).String(),
		Phone:     phone,
		Role:      domain.RoleMaster,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Store.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return s.Store.Users().GetUserByPhone(ctx, phone)
	}
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// VerifyCode signs the user in with a code from SendCode.
func (s *AuthService) VerifyCode(ctx context.Context, rawPhone, code string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	ok, err := s.Verification.VerifyCode(ctx, rawPhone, code)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !ok {
		l.Info("verification failed", slog.String("phone", phonex.Normalize(rawPhone)))
		return domain.TokenPair{}, ErrInvalidOrExpiredCode
	}

	u, err := s.Store.Users().GetUserByPhone(ctx, phonex.Normalize(rawPhone))
	if errors.Is(err, store.ErrNotFound) {
		return domain.TokenPair{}, ErrUserNotFound
	}
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !u.IsActive {
		return domain.TokenPair{}, ErrUserDisabled
	}

	if !u.IsVerified {
		u.IsVerified = true
		u.UpdatedAt = clock.Or(s.Clock).Now().UTC()
		if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
			return domain.TokenPair{}, fmt.Errorf("mark verified: %w", err)
		}
	}

	pair, err := s.Sessions.IssuePair(u.ID, u.Phone)
	if err != nil {
		return domain.TokenPair{}, err
	}
	l.Info("user signed in", slog.String("user_id", u.ID))
	return pair, nil
}

// Refresh mints a new access token for a still-existing, active user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	id, err := s.Sessions.DecodeRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return domain.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TokenPair{}, ErrUserNotFound
	}
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !u.IsActive {
		return domain.TokenPair{}, ErrUserDisabled
	}

	return s.Sessions.Refresh(strings.TrimSpace(refreshToken))
}

// Authenticate resolves an access token to its user. Missing and disabled
// users are both ErrUserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (domain.User, error) {
	id, err := s.Sessions.DecodeToken(accessToken)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	if !u.IsActive {
		return domain.User{}, ErrUserNotFound
	}
	return u, nil
}

// GetUser returns the user by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile changes the caller's name and email. An empty update
// returns the user unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) (domain.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if p.Name == nil && p.Email == nil {
		return u, nil
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		u.Name = &name
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if email != "" && !strings.Contains(email, "@") {
			return domain.User{}, &domain.ValidationError{Field: "email", Reason: "must be an email address"}
		}
		u.Email = &email
	}
	u.UpdatedAt = clock.Or(s.Clock).Now().UTC()

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
