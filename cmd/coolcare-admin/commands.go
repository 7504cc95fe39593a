package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/coolcare/coolcare/internal/coolcare/app"
	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/clock"
)

func openStore() (app.Config, store.Store, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, nil, err
	}
	st, err := app.OpenStore(cfg, app.NewLogger(cfg))
	if err != nil {
		return app.Config{}, nil, err
	}
	return cfg, st, nil
}

func runPromote(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("promote", out)
	phone := fs.String("phone", "", "phone number of the user to promote")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *phone == "" {
		return errors.New("--phone is required")
	}

	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	admin := &service.AdminService{Store: st, Clock: clock.Real(), Location: loc}

	u, err := admin.PromoteByPhone(ctx, *phone)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return fmt.Errorf("no user with phone %s; they must sign in once first", *phone)
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "promoted %s (%s) to %s\n", u.Phone, u.ID, u.Role)
	return nil
}

func runGenVAPID(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("gen-vapid", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	pub, priv, err := push.GenerateVAPIDKeys()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "VAPID_PUBLIC_KEY=%s\n", pub)
	fmt.Fprintf(out, "VAPID_PRIVATE_KEY=%s\n", priv)
	return nil
}

func runMigrate(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("migrate", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Fprintf(out, "migrations applied (%s)\n", cfg.DatabaseDriver)
	return nil
}

func runSweep(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("sweep", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	vapid := cfg.VAPID()
	if !vapid.Enabled() {
		return fmt.Errorf("set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY: %w", service.ErrPushNotConfigured)
	}

	reminders := service.NewReminderService(
		st,
		push.NewWebPushSender(vapid, nil),
		app.NewLogger(cfg),
		cfg.ReminderInterval,
		cfg.ReminderWindow,
	)
	sent, err := reminders.Sweep(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "sent %d reminders\n", sent)
	return nil
}
