package postgres

import (
	"context"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
)

type verificationCodesRepo struct {
	db   dbtx
	inTx func(ctx context.Context, fn func(db dbtx) error) error
}

func (r *verificationCodesRepo) ReplaceVerificationCode(ctx context.Context, c domain.VerificationCode) error {
	return r.inTx(ctx, func(db dbtx) error {
		if _, err := db.ExecContext(ctx, `DELETE FROM verification_codes WHERE phone = $1`, c.Phone); err != nil {
			return err
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO verification_codes (phone, code_hash, created_at, expires_at)
			VALUES ($1, $2, $3, $4)`,
			c.Phone, c.CodeHash, c.CreatedAt.UTC(), c.ExpiresAt.UTC(),
		)
		return mapConstraint(err)
	})
}

func (r *verificationCodesRepo) ConsumeVerificationCode(
	ctx context.Context,
	phone, codeHash string,
) (domain.VerificationCode, error) {
	var c domain.VerificationCode
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM verification_codes
		WHERE phone = $1 AND code_hash = $2
		RETURNING phone, code_hash, created_at, expires_at`,
		phone, codeHash,
	).Scan(&c.Phone, &c.CodeHash, &c.CreatedAt, &c.ExpiresAt)
	if err != nil {
		return domain.VerificationCode{}, mapNotFound(err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.ExpiresAt = c.ExpiresAt.UTC()
	return c, nil
}

func (r *verificationCodesRepo) DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
