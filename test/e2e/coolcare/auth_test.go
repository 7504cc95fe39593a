package coolcare_test

import (
	"net/http"
	"testing"

	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/stretchr/testify/require"
)

func TestPhoneSignIn(t *testing.T) {
	api := setupContainer(t, nil)
	client := coolcaresdk.NewClient(api.BaseURL)
	ctx := t.Context()

	sent, err := client.SendCode(ctx, "8 (999) 555-01-01")
	require.NoError(t, err)
	require.Equal(t, "+79995550101", sent.Phone)

	// Issued codes start at 100000, so this one is always wrong and
	// leaves the real code usable.
	_, err = client.VerifyCode(ctx, sent.Phone, "000000")
	assertAPIError(t, err, http.StatusBadRequest, "invalid_code")

	tokens, err := client.VerifyCode(ctx, "+7 999 555 01 01", sent.DebugCode)
	require.NoError(t, err)
	require.Equal(t, "bearer", tokens.TokenType)
	require.Positive(t, tokens.ExpiresIn)

	// Codes are single use.
	_, err = client.VerifyCode(ctx, sent.Phone, sent.DebugCode)
	assertAPIError(t, err, http.StatusBadRequest, "invalid_code")

	session := client.NewSessionFromTokens(tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresIn)
	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "+79995550101", me.Phone)
	require.Equal(t, "master", me.Role)
	require.True(t, me.IsVerified)

	me, err = session.UpdateMe(ctx, coolcaresdk.UpdateMeRequest{Name: ptr("Иван")})
	require.NoError(t, err)
	require.Equal(t, "Иван", *me.Name)

	refreshed, err := client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, tokens.RefreshToken, refreshed.RefreshToken)

	_, err = client.Refresh(ctx, tokens.AccessToken)
	assertAPIError(t, err, http.StatusUnauthorized, "invalid_token")
}

func TestSendCodeRejectsGarbage(t *testing.T) {
	api := setupContainer(t, nil)
	client := coolcaresdk.NewClient(api.BaseURL)

	_, err := client.SendCode(t.Context(), "call me")
	assertAPIError(t, err, http.StatusBadRequest, "invalid_phone")
}

func TestDebugCodesHiddenInProduction(t *testing.T) {
	api := setupContainer(t, map[string]string{"ENV": "prod", "EXPOSE_DEBUG_CODES": "false"})
	client := coolcaresdk.NewClient(api.BaseURL)

	sent, err := client.SendCode(t.Context(), "+79995550102")
	require.NoError(t, err)
	require.Empty(t, sent.DebugCode)
}
