// Package push delivers Web Push notifications with VAPID authentication.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/coolcare/coolcare/internal/coolcare/domain"
)

// DefaultSubject is the VAPID contact used when none is configured.
const DefaultSubject = "mailto:admin@coolcare.local"

// ErrSubscriptionGone means the push service no longer knows the endpoint
// (404 or 410). The subscription should be deleted.
var ErrSubscriptionGone = errors.New("push: subscription gone")

// Sender delivers one notification to one subscription.
type Sender interface {
	Send(ctx context.Context, sub domain.PushSubscription, n domain.Notification) error
}

// VAPIDConfig holds the application server key pair.
type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subject    string
	// TTL is how long the push service may hold an undelivered message.
	TTL time.Duration
}

// Enabled reports whether both keys are present.
func (c VAPIDConfig) Enabled() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}

type WebPushSender struct {
	cfg    VAPIDConfig
	client *http.Client
}

// NewWebPushSender returns a sender for cfg. client may be nil.
func NewWebPushSender(cfg VAPIDConfig, client *http.Client) *WebPushSender {
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebPushSender{cfg: cfg, client: client}
}

func (s *WebPushSender) Send(ctx context.Context, sub domain.PushSubscription, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("push: encode payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subject,
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
		TTL:             int(s.cfg.TTL.Seconds()),
		Urgency:         webpush.UrgencyHigh,
	})
	if err != nil {
		return fmt.Errorf("push: send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push: service responded %d", resp.StatusCode)
	}
	return nil
}

// GenerateVAPIDKeys returns a fresh base64url key pair.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	privateKey, publicKey, err = webpush.GenerateVAPIDKeys()
	if err != nil {
		return "", "", fmt.Errorf("push: generate vapid keys: %w", err)
	}
	return publicKey, privateKey, nil
}
