package sqlite

import (
	"context"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
)

type verificationCodesRepo struct {
	db      dbtx
	replace func(ctx context.Context, fn func(db dbtx) error) error
}

func (r *verificationCodesRepo) ReplaceVerificationCode(ctx context.Context, c domain.VerificationCode) error {
	return r.replace(ctx, func(db dbtx) error {
		if _, err := db.ExecContext(ctx, `DELETE FROM verification_codes WHERE phone = ?`, c.Phone); err != nil {
			return err
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO verification_codes (phone, code_hash, created_at, expires_at)
			VALUES (?, ?, ?, ?)`,
			c.Phone, c.CodeHash, encodeTime(c.CreatedAt), encodeTime(c.ExpiresAt),
		)
		return mapConstraint(err)
	})
}

// ConsumeVerificationCode is a single DELETE ... RETURNING, so two callers
// racing on the same code cannot both see the row.
func (r *verificationCodesRepo) ConsumeVerificationCode(
	ctx context.Context,
	phone, codeHash string,
) (domain.VerificationCode, error) {
	var (
		c                    domain.VerificationCode
		createdAt, expiresAt string
	)
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM verification_codes
		WHERE phone = ? AND code_hash = ?
		RETURNING phone, code_hash, created_at, expires_at`,
		phone, codeHash,
	).Scan(&c.Phone, &c.CodeHash, &createdAt, &expiresAt)
	if err != nil {
		return domain.VerificationCode{}, mapNotFound(err)
	}

	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return domain.VerificationCode{}, err
	}
	if c.ExpiresAt, err = decodeTime(expiresAt); err != nil {
		return domain.VerificationCode{}, err
	}
	return c, nil
}

func (r *verificationCodesRepo) DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE expires_at <= ?`, encodeTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
