package coolcaresdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// refreshSkew refreshes the access token slightly before it expires.
const refreshSkew = 30 * time.Second

// ErrNoRefreshToken is returned when the access token expired and the
// session has nothing to refresh it with.
var ErrNoRefreshToken = errors.New("coolcaresdk: access token expired and no refresh token available")

// Session is an authenticated API session.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *Client, tokens *TokenResponse) *Session {
	return &Session{
		client:       client,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
		expiresAt:    expiryFor(tokens.ExpiresIn),
	}
}

func expiryFor(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - refreshSkew)
}

func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		s.refreshToken = tokens.RefreshToken
	}
	s.expiresAt = expiryFor(tokens.ExpiresIn)
	return s.accessToken, nil
}

// ForceRefresh marks the access token as expired so the next call refreshes it.
func (s *Session) ForceRefresh() {
	s.mu.Lock()
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
