package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/internal/coolcare/store/drivers/sqlite"
	"github.com/coolcare/coolcare/pkg/clock"
	"github.com/coolcare/coolcare/pkg/idx"
	"github.com/coolcare/coolcare/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// t0 is a Monday morning in UTC.
var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "coolcare.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newSessions(t *testing.T, c clock.Clock) *SessionService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256("test", testSecret)
	require.NoError(t, err)
	return &SessionService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Issuer: "coolcare", Now: c.Now}),
		Issuer:   "coolcare",
		Clock:    c,
	}
}

type testEnv struct {
	store store.Store
	clock *clock.FakeClock
	auth  *AuthService
	jobs  *JobService
	admin *AdminService
	sms   *recordingSMS
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := newTestStore(t)
	c := clock.Fake(t0)
	sms := &recordingSMS{}
	return &testEnv{
		store: st,
		clock: c,
		sms:   sms,
		auth: &AuthService{
			Store:        st,
			Verification: &VerificationService{Codes: st.VerificationCodes(), Clock: c},
			Sessions:     newSessions(t, c),
			SMS:          sms,
			Clock:        c,
			ExposeCodes:  true,
		},
		jobs:  &JobService{Store: st, Clock: c},
		admin: &AdminService{Store: st, Clock: c},
	}
}

func seedUser(t *testing.T, st store.Store, phone string) domain.User {
	t.Helper()

	u := domain.User{
		ID:        idx.NewAt(t0).String(),
		Phone:     phone,
		Role:      domain.RoleMaster,
		IsActive:  true,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

type recordingSMS struct {
	phones []string
	codes  []string
}

func (r *recordingSMS) SendCode(_ context.Context, phone, code string) error {
	r.phones = append(r.phones, phone)
	r.codes = append(r.codes, code)
	return nil
}

func (r *recordingSMS) last() string {
	if len(r.codes) == 0 {
		return ""
	}
	return r.codes[len(r.codes)-1]
}

func ptr[T any](v T) *T { return &v }
