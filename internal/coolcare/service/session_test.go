package service

import (
	"testing"
	"time"

	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSessionTokens(t *testing.T) {
	c := clock.Fake(t0)
	s := newSessions(t, c)

	t.Run("access token decodes", func(t *testing.T) {
		tok, err := s.IssueAccessToken("u1", "+79991234567")
		require.NoError(t, err)

		id, err := s.DecodeToken(tok)
		require.NoError(t, err)
		require.Equal(t, "u1", id.UserID)
		require.Equal(t, "+79991234567", id.Phone)
	})

	t.Run("refresh token does not grant access", func(t *testing.T) {
		tok, err := s.IssueRefreshToken("u1", "+79991234567")
		require.NoError(t, err)

		_, err = s.DecodeToken(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		tok, err := s.IssueAccessToken("u1", "+79991234567")
		require.NoError(t, err)

		_, err = s.Refresh(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh returns same refresh token", func(t *testing.T) {
		refresh, err := s.IssueRefreshToken("u1", "+79991234567")
		require.NoError(t, err)

		pair, err := s.Refresh(refresh)
		require.NoError(t, err)
		require.Equal(t, refresh, pair.RefreshToken)
		require.Equal(t, jwtx.DefaultAccessTokenTTL, pair.ExpiresIn)

		id, err := s.DecodeToken(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "u1", id.UserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.DecodeToken("")
		require.ErrorIs(t, err, ErrInvalidToken)
		_, err = s.DecodeToken("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionExpiry(t *testing.T) {
	c := clock.Fake(t0)
	s := newSessions(t, c)
	s.AccessTTL = time.Hour

	tok, err := s.IssueAccessToken("u1", "+79991234567")
	require.NoError(t, err)

	c.Advance(59 * time.Minute)
	_, err = s.DecodeToken(tok)
	require.NoError(t, err)

	c.Advance(2 * time.Minute)
	_, err = s.DecodeToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	c := clock.Fake(t0)
	s := newSessions(t, c)

	other, err := jwtx.NewSignerHS256("other", []byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)
	forged, err := other.Sign(jwtx.NewClaims("u1", "+79991234567", jwtx.KindAccess, time.Hour, "coolcare", t0))
	require.NoError(t, err)

	_, err = s.DecodeToken(forged)
	require.ErrorIs(t, err, ErrInvalidToken)
}
