package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/coolcare/coolcare/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type sentPush struct {
	endpoint string
	n        domain.Notification
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentPush
	// fail maps an endpoint to the error Send returns for it.
	fail map[string]error
}

func (f *fakeSender) Send(_ context.Context, sub domain.PushSubscription, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[sub.Endpoint]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentPush{endpoint: sub.Endpoint, n: n})
	return nil
}

func subscribe(t *testing.T, env *testEnv, userID, endpoint string) {
	t.Helper()

	s := &PushService{Store: env.store, Clock: env.clock}
	require.NoError(t, s.Subscribe(context.Background(), userID, endpoint, "p256dh", "auth"))
}

func newReminder(env *testEnv, sender push.Sender) *ReminderService {
	r := NewReminderService(env.store, sender, slogx.Discard(), 0, 0)
	r.Clock = env.clock
	return r
}

func TestReminderSweep(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := seedUser(t, env.store, "+79991234567")
	subscribe(t, env, u.ID, "https://push.example/u")

	job := func(p domain.JobPatch) domain.Job {
		j, err := env.jobs.Create(ctx, u.ID, p)
		require.NoError(t, err)
		return j
	}

	soon := job(domain.JobPatch{
		CustomerName: ptr("Анна"),
		Address:      ptr("Тверская, 1"),
		ScheduledAt:  ptr(t0.Add(20 * time.Minute)),
	})
	job(domain.JobPatch{ScheduledAt: ptr(t0.Add(2 * time.Hour))})
	job(domain.JobPatch{ScheduledAt: ptr(t0.Add(-5 * time.Minute))})
	job(domain.JobPatch{ScheduledAt: ptr(t0.Add(10 * time.Minute)), Status: ptr(domain.StatusCancelled)})
	job(domain.JobPatch{ScheduledAt: ptr(t0.Add(10 * time.Minute)), Status: ptr(domain.StatusCompleted)})
	job(domain.JobPatch{Title: ptr("unscheduled")})

	sender := &fakeSender{}
	r := newReminder(env, sender)

	n, err := r.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, sender.sent, 1)
	require.Equal(t, domain.Notification{
		Title: "Напоминание: Анна",
		Body:  "Через 30 мин: Тверская, 1",
		JobID: soon.ID,
	}, sender.sent[0].n)

	stored, err := env.jobs.Get(ctx, u.ID, soon.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RemindedAt)

	t.Run("second sweep sends nothing", func(t *testing.T) {
		env.clock.Advance(5 * time.Minute)
		n, err := r.Sweep(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
		require.Len(t, sender.sent, 1)
	})

	t.Run("rescheduling makes it eligible again", func(t *testing.T) {
		_, err := env.jobs.Update(ctx, u.ID, soon.ID, domain.JobPatch{ScheduledAt: ptr(t0.Add(25 * time.Minute))})
		require.NoError(t, err)

		n, err := r.Sweep(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})
}

func TestReminderSkipsUsersWithoutSubscription(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := seedUser(t, env.store, "+79991234567")

	j, err := env.jobs.Create(ctx, u.ID, domain.JobPatch{ScheduledAt: ptr(t0.Add(10 * time.Minute))})
	require.NoError(t, err)

	sender := &fakeSender{}
	n, err := newReminder(env, sender).Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	stored, err := env.jobs.Get(ctx, u.ID, j.ID)
	require.NoError(t, err)
	require.Nil(t, stored.RemindedAt, "unsent reminders stay pending")
}

func TestReminderDeliveryFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gone := seedUser(t, env.store, "+79991111111")
	flaky := seedUser(t, env.store, "+79992222222")
	subscribe(t, env, gone.ID, "https://push.example/gone")
	subscribe(t, env, flaky.ID, "https://push.example/flaky")

	for _, uid := range []string{gone.ID, gone.ID, flaky.ID} {
		_, err := env.jobs.Create(ctx, uid, domain.JobPatch{ScheduledAt: ptr(t0.Add(15 * time.Minute))})
		require.NoError(t, err)
	}

	sender := &fakeSender{fail: map[string]error{
		"https://push.example/gone":  push.ErrSubscriptionGone,
		"https://push.example/flaky": errors.New("503"),
	}}
	n, err := newReminder(env, sender).Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = env.store.PushSubscriptions().GetPushSubscriptionByUser(ctx, gone.ID)
	require.Error(t, err, "gone subscription is removed")

	_, err = env.store.PushSubscriptions().GetPushSubscriptionByUser(ctx, flaky.ID)
	require.NoError(t, err, "transient failure keeps the subscription")

	delete(sender.fail, "https://push.example/flaky")
	n, err = newReminder(env, sender).Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestReminderWithoutSender(t *testing.T) {
	env := newTestEnv(t)
	n, err := newReminder(env, nil).Sweep(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestReminderNotification(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		n := ReminderNotification(domain.Job{ID: "j1"}, 45*time.Minute)
		require.Equal(t, "Напоминание: Клиент", n.Title)
		require.Equal(t, "Через 45 мин: ", n.Body)
	})

	t.Run("long address truncated by runes", func(t *testing.T) {
		addr := ""
		for range 120 {
			addr += "ж"
		}
		n := ReminderNotification(domain.Job{ID: "j1", Address: &addr}, 30*time.Minute)
		require.Len(t, []rune(n.Body), 100)
	})
}

func TestReminderStartStop(t *testing.T) {
	env := newTestEnv(t)
	r := NewReminderService(env.store, &fakeSender{}, slogx.Discard(), time.Hour, time.Minute)
	r.Start()
	r.Stop()
}
