package postgres

import (
	"context"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
)

type pushSubscriptionsRepo struct {
	db dbtx
}

func (r *pushSubscriptionsRepo) UpsertPushSubscription(ctx context.Context, s domain.PushSubscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh_key, auth_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			endpoint = EXCLUDED.endpoint,
			p256dh_key = EXCLUDED.p256dh_key,
			auth_key = EXCLUDED.auth_key,
			updated_at = EXCLUDED.updated_at`,
		s.ID, s.UserID, s.Endpoint, s.P256dhKey, s.AuthKey, s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *pushSubscriptionsRepo) GetPushSubscriptionByUser(ctx context.Context, userID string) (domain.PushSubscription, error) {
	var s domain.PushSubscription
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, endpoint, p256dh_key, auth_key, created_at, updated_at
		FROM push_subscriptions WHERE user_id = $1`, userID,
	).Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dhKey, &s.AuthKey, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.PushSubscription{}, mapNotFound(err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *pushSubscriptionsRepo) DeletePushSubscription(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE user_id = $1`, userID))
}
