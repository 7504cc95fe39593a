package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/push"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		DatabaseDriver:       "sqlite",
		DatabaseFile:         filepath.Join(t.TempDir(), "coolcare.db"),
		CodeStore:            "database",
		JWTAlgorithm:         "HS256",
		Issuer:               "coolcare",
		AccessTTL:            time.Hour,
		RefreshTTL:           24 * time.Hour,
		CodeTTL:              10 * time.Minute,
		ExposeDebugCodes:     true,
		Timezone:             "UTC",
		ReminderWindow:       30 * time.Minute,
		ReminderInterval:     5 * time.Minute,
	}
}

func TestNew_WiresRouter(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.closeStores() })

	require.Nil(t, application.reminderService, "reminders stay off without VAPID keys")

	rec := httptest.NewRecorder()
	application.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"phone":"8 999 123-45-67"}`)
	application.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/send-code", body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"debug_code"`)
}

func TestNew_MemoryCodesAndPush(t *testing.T) {
	pub, priv, err := push.GenerateVAPIDKeys()
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.CodeStore = "memory"
	cfg.VAPIDPublicKey = pub
	cfg.VAPIDPrivateKey = priv

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.closeStores() })

	require.NotNil(t, application.reminderService)
	require.Equal(t, cfg.ReminderWindow, application.reminderService.Window)

	rec := httptest.NewRecorder()
	application.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/push/vapid-public", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), pub)
}

func TestNew_BadTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timezone = "Nowhere/Special"
	_, err := New(cfg)
	require.Error(t, err)
}
