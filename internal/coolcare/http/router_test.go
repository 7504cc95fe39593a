package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/internal/coolcare/store/drivers/sqlite"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
	"github.com/coolcare/coolcare/pkg/jwtx"
	"github.com/coolcare/coolcare/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func init() {
	roomy := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	httpx.StrictLimit = roomy
	httpx.ModerateLimit = roomy
	httpx.LenientLimit = roomy
	httpx.PublicLimit = roomy
}

type testServer struct {
	*httptest.Server
	client *coolcaresdk.Client
	store  store.Store
	admin  *service.AdminService
}

func newTestServer(t *testing.T, vapid push.VAPIDConfig) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "coolcare.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256("test", testSecret)
	require.NoError(t, err)
	sessions := &service.SessionService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Issuer: "coolcare"}),
		Issuer:   "coolcare",
	}

	admin := &service.AdminService{Store: st}
	r := NewRouter(signer, "test", st, slogx.Discard())
	r.AuthService = &service.AuthService{
		Store:        st,
		Verification: &service.VerificationService{Codes: st.VerificationCodes()},
		Sessions:     sessions,
		ExposeCodes:  true,
	}
	r.JobService = &service.JobService{Store: st}
	r.AdminService = admin
	r.PushService = &service.PushService{Store: st, VAPID: vapid}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		client: coolcaresdk.NewClient(srv.URL),
		store:  st,
		admin:  admin,
	}
}

func (s *testServer) signIn(t *testing.T, phone string) *coolcaresdk.Session {
	t.Helper()

	ctx := context.Background()
	sent, err := s.client.SendCode(ctx, phone)
	require.NoError(t, err)
	require.NotEmpty(t, sent.DebugCode)

	sess, err := s.client.SignIn(ctx, phone, sent.DebugCode)
	require.NoError(t, err)
	return sess
}

// raw sends body as JSON with an optional bearer token.
func (s *testServer) raw(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *coolcaresdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestAuthEndpoints(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, push.VAPIDConfig{})

	t.Run("send code normalizes phone", func(t *testing.T) {
		sent, err := s.client.SendCode(ctx, "8 (999) 123-45-67")
		require.NoError(t, err)
		require.Equal(t, "+79991234567", sent.Phone)
		require.Equal(t, "SMS code sent", sent.Message)
		require.Len(t, sent.DebugCode, 6)
	})

	t.Run("invalid phone", func(t *testing.T) {
		_, err := s.client.SendCode(ctx, "abc")
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidPhone)
	})

	t.Run("verify once", func(t *testing.T) {
		sent, err := s.client.SendCode(ctx, "+79991234567")
		require.NoError(t, err)

		_, err = s.client.VerifyCode(ctx, "+79991234567", "000000")
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidCode)

		tokens, err := s.client.VerifyCode(ctx, "+7 999 123 45 67", sent.DebugCode)
		require.NoError(t, err)
		require.Equal(t, "bearer", tokens.TokenType)
		require.Equal(t, int(jwtx.DefaultAccessTokenTTL.Seconds()), tokens.ExpiresIn)

		_, err = s.client.VerifyCode(ctx, "+79991234567", sent.DebugCode)
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidCode)
	})

	t.Run("refresh keeps refresh token", func(t *testing.T) {
		sess := s.signIn(t, "+79991234567")

		tokens, err := s.client.Refresh(ctx, sess.RefreshToken())
		require.NoError(t, err)
		require.Equal(t, sess.RefreshToken(), tokens.RefreshToken)

		_, err = s.client.Refresh(ctx, sess.AccessToken())
		requireAPIError(t, err, http.StatusUnauthorized, coolcaresdk.ErrorCodeInvalidToken)
	})

	t.Run("me", func(t *testing.T) {
		sess := s.signIn(t, "+79991234567")

		me, err := sess.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, "+79991234567", me.Phone)
		require.Equal(t, "master", me.Role)
		require.True(t, me.IsVerified)

		name := "Иван"
		me, err = sess.UpdateMe(ctx, coolcaresdk.UpdateMeRequest{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Иван", *me.Name)
	})

	t.Run("refresh token is not a bearer token", func(t *testing.T) {
		sess := s.signIn(t, "+79991234567")

		resp := s.raw(t, http.MethodGet, "/auth/me", sess.RefreshToken(), nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = s.raw(t, http.MethodGet, "/auth/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, s.URL+"/auth/send-code", bytes.NewBufferString("{"))
		require.NoError(t, err)
		resp, err := s.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestJobEndpoints(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, push.VAPIDConfig{})
	worker := s.signIn(t, "+79991111111")
	other := s.signIn(t, "+79992222222")

	day := time.Now().UTC().Format(time.DateOnly)

	t.Run("create from worker app payload", func(t *testing.T) {
		resp := s.raw(t, http.MethodPost, "/jobs", worker.AccessToken(), map[string]any{
			"customer_name": "Анна",
			"address":       "Тверская, 1",
			"scheduled_at":  day + "T10:30",
			"price":         "3500",
			"services":      []map[string]any{{"description": "Чистка", "price": "1500", "quantity": "2"}},
			"latitude":      55.75,
			"longitude":     37.61,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var j coolcaresdk.Job
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&j))
		require.Equal(t, "scheduled", j.Status)
		require.Equal(t, 3500.0, *j.Price)
		require.Len(t, j.Services, 1)
		require.EqualValues(t, 2, j.Services[0].Quantity)
		require.Equal(t, 10, j.ScheduledAt.UTC().Hour())
	})

	second, err := worker.CreateJob(ctx, coolcaresdk.JobRequest{
		ScheduledAt: ptr(day + "T12:00:00Z"),
		Latitude:    ptr(55.80),
		Longitude:   ptr(37.61),
	})
	require.NoError(t, err)

	t.Run("list and filter", func(t *testing.T) {
		jobs, err := worker.Jobs(ctx, "")
		require.NoError(t, err)
		require.Len(t, jobs, 2)

		jobs, err = worker.Jobs(ctx, "completed")
		require.NoError(t, err)
		require.Empty(t, jobs)

		resp := s.raw(t, http.MethodGet, "/jobs?status_filter=bogus", worker.AccessToken(), nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("today and route", func(t *testing.T) {
		today, err := worker.TodayJobs(ctx)
		require.NoError(t, err)
		require.Len(t, today, 2)

		route, err := worker.OptimizeRoute(ctx, day)
		require.NoError(t, err)
		require.Len(t, route.Order, 2)
		require.Equal(t, second.ID, route.Order[1])
		require.Greater(t, route.TotalDistanceKm, 0.0)

		resp := s.raw(t, http.MethodGet, "/jobs/route/optimize?date_str="+day, worker.AccessToken(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, err = worker.OptimizeRoute(ctx, "tomorrow")
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidRequest)
	})

	t.Run("update and stats", func(t *testing.T) {
		updated, err := worker.UpdateJob(ctx, second.ID, coolcaresdk.JobRequest{
			Status: ptr("completed"),
			Price:  ptr(coolcaresdk.Amount(2000)),
		})
		require.NoError(t, err)
		require.Equal(t, "completed", updated.Status)
		require.NotNil(t, updated.CompletedAt)

		stats, err := worker.DashboardStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, stats.TotalJobs)
		require.Equal(t, 1, stats.CompletedJobs)
		require.InDelta(t, 2000.0, stats.TotalRevenue, 1e-9)

		_, err = worker.UpdateJob(ctx, second.ID, coolcaresdk.JobRequest{Latitude: ptr(123.0)})
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidRequest)
	})

	t.Run("other workers cannot see the job", func(t *testing.T) {
		_, err := other.Job(ctx, second.ID)
		requireAPIError(t, err, http.StatusNotFound, coolcaresdk.ErrorCodeNotFound)

		err = other.DeleteJob(ctx, second.ID)
		requireAPIError(t, err, http.StatusNotFound, coolcaresdk.ErrorCodeNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, worker.DeleteJob(ctx, second.ID))
		_, err := worker.Job(ctx, second.ID)
		requireAPIError(t, err, http.StatusNotFound, coolcaresdk.ErrorCodeNotFound)
	})
}

func TestAdminEndpoints(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, push.VAPIDConfig{})
	worker := s.signIn(t, "+79991111111")
	dispatcher := s.signIn(t, "+79990000000")

	t.Run("masters are forbidden", func(t *testing.T) {
		_, err := dispatcher.AdminJobs(ctx, "")
		requireAPIError(t, err, http.StatusForbidden, coolcaresdk.ErrorCodeForbidden)
	})

	_, err := s.admin.PromoteByPhone(ctx, "+79990000000")
	require.NoError(t, err)

	me, err := worker.Me(ctx)
	require.NoError(t, err)

	t.Run("create for worker", func(t *testing.T) {
		j, err := dispatcher.AdminCreateJob(ctx, coolcaresdk.JobRequest{UserID: &me.ID, Title: ptr("Монтаж")})
		require.NoError(t, err)
		require.Equal(t, me.ID, j.UserID)

		mine, err := worker.Jobs(ctx, "")
		require.NoError(t, err)
		require.Len(t, mine, 1)

		all, err := dispatcher.AdminJobs(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 1)

		_, err = dispatcher.AdminUpdateJob(ctx, j.ID, coolcaresdk.JobRequest{Priority: ptr("urgent")})
		require.NoError(t, err)

		stats, err := dispatcher.AdminStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, stats.TotalJobs)

		require.NoError(t, dispatcher.AdminDeleteJob(ctx, j.ID))
	})

	t.Run("create without worker", func(t *testing.T) {
		_, err := dispatcher.AdminCreateJob(ctx, coolcaresdk.JobRequest{Title: ptr("x")})
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidRequest)
	})

	t.Run("disable user locks them out", func(t *testing.T) {
		users, err := dispatcher.AdminUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		u, err := dispatcher.AdminUpdateUser(ctx, me.ID, coolcaresdk.AdminUpdateUserRequest{IsActive: ptr(false)})
		require.NoError(t, err)
		require.False(t, u.IsActive)

		_, err = worker.Me(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, coolcaresdk.ErrorCodeInvalidToken)
	})
}

func TestPushEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, push.VAPIDConfig{})
		_, err := s.client.VAPIDPublicKey(ctx)
		requireAPIError(t, err, http.StatusServiceUnavailable, coolcaresdk.ErrorCodeUnavailable)
	})

	t.Run("subscribe", func(t *testing.T) {
		s := newTestServer(t, push.VAPIDConfig{PublicKey: "BPub", PrivateKey: "priv"})

		key, err := s.client.VAPIDPublicKey(ctx)
		require.NoError(t, err)
		require.Equal(t, "BPub", key)

		sess := s.signIn(t, "+79991234567")
		require.NoError(t, sess.SubscribePush(ctx, coolcaresdk.PushSubscribeRequest{
			Endpoint: "https://push.example/abc",
			Keys:     coolcaresdk.PushKeys{P256dh: "p", Auth: "a"},
		}))

		err = sess.SubscribePush(ctx, coolcaresdk.PushSubscribeRequest{Endpoint: "https://push.example/abc"})
		requireAPIError(t, err, http.StatusBadRequest, coolcaresdk.ErrorCodeInvalidRequest)
	})
}

func TestHealthEndpoints(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, push.VAPIDConfig{})

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	health, err := s.client.GetHealth(ctx)
	require.NoError(t, err)
	require.Equal(t, "connected", health.Database)
}

func ptr[T any](v T) *T { return &v }
