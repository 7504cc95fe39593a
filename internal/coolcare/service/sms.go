package service

import (
	"context"
	"log/slog"

	"github.com/coolcare/coolcare/pkg/slogx"
)

// SMSSender delivers a verification code to a phone.
type SMSSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LogSMSSender writes codes to the log instead of sending them. It is the
// default until an SMS gateway is configured.
type LogSMSSender struct{}

func (LogSMSSender) SendCode(ctx context.Context, phone, code string) error {
	slogx.FromContext(ctx).Info("verification code issued",
		slog.String("phone", phone),
		slog.String("code", code),
	)
	return nil
}
