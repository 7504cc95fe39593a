package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/cryptox"
	"github.com/coolcare/coolcare/pkg/jwtx"
)

const signingKeyID = "coolcare-1"

// InitSessionKeys builds the token signer and its matching verifier.
//
// Algorithms:
//   - "HS256": JWT_SECRET is the shared secret (32 bytes minimum).
//   - "EdDSA": JWT_PRIVATE_KEY_FILE holds a PKCS8 PEM Ed25519 key.
//
// When no key material is configured a key is generated in memory and every
// token is invalidated by a restart.
func InitSessionKeys(cfg Config, c clock.Clock, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	opts := jwtx.VerifyOptions{
		Issuer: cfg.Issuer,
		Now:    clock.Or(c).Now,
	}

	switch cfg.JWTAlgorithm {
	case "EdDSA":
		pemKey, err := loadEd25519Key(cfg.JWTPrivateKeyFile, logger)
		if err != nil {
			return nil, nil, err
		}
		signer, err := jwtx.NewSignerEdDSA(signingKeyID, pemKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create EdDSA signer: %w", err)
		}
		logger.Info("session signing key loaded", "algorithm", signer.Alg(), "kid", signer.KID())
		return signer, signer.(jwtx.VerifierSource).Verifier(opts), nil

	case "HS256":
		secret := []byte(cfg.JWTSecret)
		if len(secret) == 0 {
			generated, err := cryptox.GenerateToken(cryptox.SecretSize256)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate JWT secret: %w", err)
			}
			secret = []byte(generated)
			logger.Warn("JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
		}
		signer, err := jwtx.NewSignerHS256(signingKeyID, secret)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create HS256 signer: %w", err)
		}
		logger.Info("session signing key loaded", "algorithm", signer.Alg(), "kid", signer.KID())
		return signer, jwtx.NewVerifierHS256(secret, opts), nil

	default:
		return nil, nil, fmt.Errorf("unsupported JWT algorithm %q", cfg.JWTAlgorithm)
	}
}

func loadEd25519Key(path string, logger *slog.Logger) ([]byte, error) {
	if path == "" {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		logger.Warn("JWT_PRIVATE_KEY_FILE not set, using an ephemeral Ed25519 key; tokens will not survive a restart")
		return pemKey, nil
	}

	pemKey, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JWT private key: %w", err)
	}
	if _, err := cryptox.ParseEd25519Key(pemKey); err != nil {
		return nil, fmt.Errorf("invalid JWT private key %s: %w", path, err)
	}
	return pemKey, nil
}
