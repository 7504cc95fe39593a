package service

import (
	"context"
	"testing"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/stretchr/testify/require"
)

func TestAuthSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("first contact registers a master", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.auth.SendCode(ctx, "8 999 123 45 67")
		require.NoError(t, err)
		require.Equal(t, "+79991234567", res.Phone)
		require.Equal(t, env.sms.last(), res.DebugCode)
		require.Equal(t, []string{"+79991234567"}, env.sms.phones)

		u, err := env.store.Users().GetUserByPhone(ctx, "+79991234567")
		require.NoError(t, err)
		require.Equal(t, domain.RoleMaster, u.Role)
		require.True(t, u.IsActive)
		require.False(t, u.IsVerified)

		pair, err := env.auth.VerifyCode(ctx, "+79991234567", res.DebugCode)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		me, err := env.auth.Authenticate(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, u.ID, me.ID)
		require.True(t, me.IsVerified)
	})

	t.Run("second send reuses the user", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.auth.SendCode(ctx, "+79991234567")
		require.NoError(t, err)
		_, err = env.auth.SendCode(ctx, "+79991234567")
		require.NoError(t, err)

		users, err := env.store.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("debug code hidden unless exposed", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.ExposeCodes = false

		res, err := env.auth.SendCode(ctx, "+79991234567")
		require.NoError(t, err)
		require.Empty(t, res.DebugCode)
		require.NotEmpty(t, env.sms.last())
	})

	t.Run("invalid phone", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.auth.SendCode(ctx, "---")
		require.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("wrong and expired codes", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.auth.SendCode(ctx, "+79991234567")
		require.NoError(t, err)

		_, err = env.auth.VerifyCode(ctx, "+79991234567", "000000")
		require.ErrorIs(t, err, ErrInvalidOrExpiredCode)

		env.clock.Advance(11 * time.Minute)
		_, err = env.auth.VerifyCode(ctx, "+79991234567", res.DebugCode)
		require.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	})

	t.Run("disabled user cannot sign in", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.auth.SendCode(ctx, "+79991234567")
		require.NoError(t, err)

		u, err := env.store.Users().GetUserByPhone(ctx, "+79991234567")
		require.NoError(t, err)
		_, err = env.admin.UpdateUser(ctx, u.ID, domain.UserPatch{IsActive: ptr(false)})
		require.NoError(t, err)

		_, err = env.auth.VerifyCode(ctx, "+79991234567", res.DebugCode)
		require.ErrorIs(t, err, ErrUserDisabled)
	})
}

func TestAuthRefresh(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.SendCode(ctx, "+79991234567")
	require.NoError(t, err)
	pair, err := env.auth.VerifyCode(ctx, "+79991234567", res.DebugCode)
	require.NoError(t, err)

	t.Run("refresh keeps refresh token", func(t *testing.T) {
		env.clock.Advance(time.Hour)
		next, err := env.auth.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, pair.RefreshToken, next.RefreshToken)
		require.NotEqual(t, pair.AccessToken, next.AccessToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		_, err := env.auth.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("disabled user", func(t *testing.T) {
		u, err := env.store.Users().GetUserByPhone(ctx, "+79991234567")
		require.NoError(t, err)
		_, err = env.admin.UpdateUser(ctx, u.ID, domain.UserPatch{IsActive: ptr(false)})
		require.NoError(t, err)

		_, err = env.auth.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrUserDisabled)

		_, err = env.auth.Authenticate(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthRefreshUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	refresh, err := env.auth.Sessions.IssueRefreshToken("01HZZZZZZZZZZZZZZZZZZZZZZZ", "+79991234567")
	require.NoError(t, err)

	_, err = env.auth.Refresh(context.Background(), refresh)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthUpdateProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := seedUser(t, env.store, "+79991234567")

	got, err := env.auth.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{})
	require.NoError(t, err)
	require.Nil(t, got.Name)

	env.clock.Advance(time.Minute)
	got, err = env.auth.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{
		Name:  ptr("  Иван  "),
		Email: ptr("ivan@example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, "Иван", *got.Name)
	require.Equal(t, t0.Add(time.Minute), got.UpdatedAt)

	stored, err := env.auth.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "ivan@example.com", *stored.Email)

	var verr *domain.ValidationError
	_, err = env.auth.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Email: ptr("nope")})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "email", verr.Field)

	_, err = env.auth.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Name: ptr("x")})
	require.ErrorIs(t, err, ErrUserNotFound)
}
