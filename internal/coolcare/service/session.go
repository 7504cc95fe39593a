package service

import (
	"fmt"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/jwtx"
)

// SessionService mints and checks bearer tokens. Tokens are not stored;
// there is no revocation list and refresh tokens are not rotated.
type SessionService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Clock      clock.Clock
}

func (s *SessionService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

func (s *SessionService) IssueAccessToken(userID, phone string) (string, error) {
	return s.issue(userID, phone, jwtx.KindAccess, s.accessTTL())
}

func (s *SessionService) IssueRefreshToken(userID, phone string) (string, error) {
	return s.issue(userID, phone, jwtx.KindRefresh, s.refreshTTL())
}

// IssuePair mints a fresh access and refresh token.
func (s *SessionService) IssuePair(userID, phone string) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(userID, phone)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(userID, phone)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: s.accessTTL()}, nil
}

func (s *SessionService) issue(userID, phone string, kind jwtx.Kind, ttl time.Duration) (string, error) {
	claims := jwtx.NewClaims(userID, phone, kind, ttl, s.Issuer, clock.Or(s.Clock).Now())
	tok, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return tok, nil
}

// DecodeToken accepts access tokens only. Any failure is ErrInvalidToken.
func (s *SessionService) DecodeToken(token string) (domain.Identity, error) {
	return s.decode(token, jwtx.KindAccess)
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token is handed back unchanged.
func (s *SessionService) Refresh(refreshToken string) (domain.TokenPair, error) {
	id, err := s.decode(refreshToken, jwtx.KindRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	access, err := s.IssueAccessToken(id.UserID, id.Phone)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refreshToken, ExpiresIn: s.accessTTL()}, nil
}

// DecodeRefreshToken validates a refresh token without minting anything.
func (s *SessionService) DecodeRefreshToken(token string) (domain.Identity, error) {
	return s.decode(token, jwtx.KindRefresh)
}

func (s *SessionService) decode(token string, kind jwtx.Kind) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrInvalidToken
	}
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if err := claims.ValidateKind(kind); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, ErrInvalidToken
	}
	return domain.Identity{UserID: claims.Subject, Phone: claims.Phone}, nil
}
