package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
)

const (
	DefaultReminderInterval = 5 * time.Minute
	DefaultReminderWindow   = 30 * time.Minute

	// maxReminderBodyRunes keeps the body within what lock screens show.
	maxReminderBodyRunes = 100
)

// ReminderService periodically pushes a reminder for jobs that start soon.
// Each job is reminded at most once; reminded_at records that it was.
type ReminderService struct {
	Store    store.Store
	Sender   push.Sender
	Clock    clock.Clock
	Logger   *slog.Logger
	Interval time.Duration
	Window   time.Duration

	loop loop
}

// NewReminderService creates a reminder service. Non-positive interval and
// window fall back to 5 and 30 minutes.
func NewReminderService(st store.Store, sender push.Sender, logger *slog.Logger, interval, window time.Duration) *ReminderService {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	if window <= 0 {
		window = DefaultReminderWindow
	}
	return &ReminderService{
		Store:    st,
		Sender:   sender,
		Logger:   logger,
		Interval: interval,
		Window:   window,
		loop:     newLoop(),
	}
}

// Start runs sweeps in the background until Stop. The first sweep happens
// after one interval.
func (s *ReminderService) Start() {
	s.loop.start(s.Interval, false, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.Logger.Error("reminder sweep failed", "error", err)
		}
	})
	s.Logger.Info("reminder service started", "interval", s.Interval, "window", s.Window)
}

// Stop blocks until an in-flight sweep finishes.
func (s *ReminderService) Stop() {
	s.loop.stop()
	s.Logger.Info("reminder service stopped")
}

// Sweep sends reminders for open, unreminded jobs starting within the
// window and returns how many were delivered. Delivery failures are logged
// and leave the job eligible for the next sweep.
func (s *ReminderService) Sweep(ctx context.Context) (int, error) {
	if s.Sender == nil {
		return 0, nil
	}
	now := clock.Or(s.Clock).Now().UTC()
	window := s.Window
	if window <= 0 {
		window = DefaultReminderWindow
	}

	jobs, err := s.Store.Jobs().ListReminderCandidates(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("list reminder candidates: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	subs := make(map[string]*domain.PushSubscription)
	sent := 0
	for _, j := range jobs {
		sub, ok := subs[j.UserID]
		if !ok {
			sub, err = s.subscription(ctx, j.UserID)
			if err != nil {
				return sent, err
			}
			subs[j.UserID] = sub
		}
		if sub == nil {
			continue
		}

		err := s.Sender.Send(ctx, *sub, ReminderNotification(j, window))
		if errors.Is(err, push.ErrSubscriptionGone) {
			s.Logger.Info("push subscription gone, removing", "user_id", j.UserID)
			if err := s.Store.PushSubscriptions().DeletePushSubscription(ctx, j.UserID); err != nil && !errors.Is(err, store.ErrNotFound) {
				s.Logger.Error("failed to delete push subscription", "user_id", j.UserID, "error", err)
			}
			subs[j.UserID] = nil
			continue
		}
		if err != nil {
			s.Logger.Warn("reminder delivery failed", "job_id", j.ID, "error", err)
			continue
		}

		if _, err := s.Store.Jobs().MarkJobReminded(ctx, j.ID, now); err != nil {
			s.Logger.Error("failed to mark job reminded", "job_id", j.ID, "error", err)
		}
		sent++
	}

	s.Logger.Info("reminder sweep completed", "candidates", len(jobs), "sent", sent)
	return sent, nil
}

func (s *ReminderService) subscription(ctx context.Context, userID string) (*domain.PushSubscription, error) {
	sub, err := s.Store.PushSubscriptions().GetPushSubscriptionByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load push subscription: %w", err)
	}
	return &sub, nil
}

// ReminderNotification builds the push payload for j. The body names the
// reminder window rather than the exact time left.
func ReminderNotification(j domain.Job, window time.Duration) domain.Notification {
	address := ""
	if j.Address != nil {
		address = *j.Address
	}
	body := fmt.Sprintf("Через %d мин: %s", int(window.Minutes()), address)
	if r := []rune(body); len(r) > maxReminderBodyRunes {
		body = string(r[:maxReminderBodyRunes])
	}
	return domain.Notification{
		Title: "Напоминание: " + j.CustomerLabel(),
		Body:  body,
		JobID: j.ID,
	}
}
