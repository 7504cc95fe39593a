package sqlite

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
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			endpoint = excluded.endpoint,
			p256dh_key = excluded.p256dh_key,
			auth_key = excluded.auth_key,
			updated_at = excluded.updated_at`,
		s.ID, s.UserID, s.Endpoint, s.P256dhKey, s.AuthKey, encodeTime(s.CreatedAt), encodeTime(s.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *pushSubscriptionsRepo) GetPushSubscriptionByUser(ctx context.Context, userID string) (domain.PushSubscription, error) {
	var (
		s                    domain.PushSubscription
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, endpoint, p256dh_key, auth_key, created_at, updated_at
		FROM push_subscriptions WHERE user_id = ?`, userID,
	).Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dhKey, &s.AuthKey, &createdAt, &updatedAt)
	if err != nil {
		return domain.PushSubscription{}, mapNotFound(err)
	}

	if s.CreatedAt, err = decodeTime(createdAt); err != nil {
		return domain.PushSubscription{}, err
	}
	if s.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return domain.PushSubscription{}, err
	}
	return s, nil
}

func (r *pushSubscriptionsRepo) DeletePushSubscription(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE user_id = ?`, userID))
}
