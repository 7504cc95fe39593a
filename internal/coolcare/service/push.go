package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/idx"
	"github.com/coolcare/coolcare/pkg/slogx"
)

// PushService manages browser push subscriptions.
type PushService struct {
	Store store.Store
	VAPID push.VAPIDConfig
	Clock clock.Clock
}

// VAPIDPublicKey returns the key the browser needs to subscribe.
func (s *PushService) VAPIDPublicKey() (string, error) {
	if !s.VAPID.Enabled() {
		return "", ErrPushNotConfigured
	}
	return s.VAPID.PublicKey, nil
}

// Subscribe stores the user's subscription, replacing an earlier one.
func (s *PushService) Subscribe(ctx context.Context, userID, endpoint, p256dh, auth string) error {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "https://") && !strings.HasPrefix(endpoint, "http://") {
		return &domain.ValidationError{Field: "endpoint", Reason: "must be an http(s) URL"}
	}
	if strings.TrimSpace(p256dh) == "" || strings.TrimSpace(auth) == "" {
		return &domain.ValidationError{Field: "keys", Reason: "p256dh and auth are required"}
	}

	now := clock.Or(s.Clock).Now().UTC()
	err := s.Store.PushSubscriptions().UpsertPushSubscription(ctx, domain.PushSubscription{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Endpoint:  endpoint,
		P256dhKey: strings.TrimSpace(p256dh),
		AuthKey:   strings.TrimSpace(auth),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("push subscription saved", slog.String("user_id", userID))
	return nil
}

// Unsubscribe removes the user's subscription if there is one.
func (s *PushService) Unsubscribe(ctx context.Context, userID string) error {
	err := s.Store.PushSubscriptions().DeletePushSubscription(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
