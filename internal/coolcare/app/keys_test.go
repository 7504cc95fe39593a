package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/cryptox"
	"github.com/coolcare/coolcare/pkg/jwtx"
	"github.com/coolcare/coolcare/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func signAndVerify(t *testing.T, signer jwtx.Signer, verifier jwtx.Verifier, now time.Time) {
	t.Helper()

	token, err := signer.Sign(jwtx.NewClaims("user-1", "+79990000000", jwtx.KindAccess, time.Hour, "coolcare", now))
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestInitSessionKeys(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c := clock.Fake(now)

	t.Run("HS256 configured secret", func(t *testing.T) {
		cfg := Config{JWTAlgorithm: "HS256", JWTSecret: "0123456789abcdef0123456789abcdef", Issuer: "coolcare"}
		signer, verifier, err := InitSessionKeys(cfg, c, slogx.Discard())
		require.NoError(t, err)
		require.Equal(t, "HS256", signer.Alg())
		signAndVerify(t, signer, verifier, now)
	})

	t.Run("HS256 short secret", func(t *testing.T) {
		cfg := Config{JWTAlgorithm: "HS256", JWTSecret: "short", Issuer: "coolcare"}
		_, _, err := InitSessionKeys(cfg, c, slogx.Discard())
		require.Error(t, err)
	})

	t.Run("HS256 ephemeral secret", func(t *testing.T) {
		cfg := Config{JWTAlgorithm: "HS256", Issuer: "coolcare"}
		signer, verifier, err := InitSessionKeys(cfg, c, slogx.Discard())
		require.NoError(t, err)
		signAndVerify(t, signer, verifier, now)
	})

	t.Run("EdDSA from file", func(t *testing.T) {
		pemKey, err := cryptox.GenerateEd25519Key()
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "jwt.pem")
		require.NoError(t, os.WriteFile(path, pemKey, 0o600))

		cfg := Config{JWTAlgorithm: "EdDSA", JWTPrivateKeyFile: path, Issuer: "coolcare"}
		signer, verifier, err := InitSessionKeys(cfg, c, slogx.Discard())
		require.NoError(t, err)
		require.Equal(t, "EdDSA", signer.Alg())
		signAndVerify(t, signer, verifier, now)
	})

	t.Run("EdDSA bad file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jwt.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a key"), 0o600))

		cfg := Config{JWTAlgorithm: "EdDSA", JWTPrivateKeyFile: path, Issuer: "coolcare"}
		_, _, err := InitSessionKeys(cfg, c, slogx.Discard())
		require.Error(t, err)
	})

	t.Run("issuer enforced", func(t *testing.T) {
		cfg := Config{JWTAlgorithm: "HS256", JWTSecret: "0123456789abcdef0123456789abcdef", Issuer: "coolcare"}
		signer, verifier, err := InitSessionKeys(cfg, c, slogx.Discard())
		require.NoError(t, err)

		token, err := signer.Sign(jwtx.NewClaims("user-1", "+79990000000", jwtx.KindAccess, time.Hour, "someone-else", now))
		require.NoError(t, err)
		_, err = verifier.Verify(token)
		require.Error(t, err)
	})
}
