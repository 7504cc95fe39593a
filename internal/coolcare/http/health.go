package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
	"github.com/coolcare/coolcare/pkg/jwtx"
)

// Pinger is implemented by code stores that live outside the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving, with uptime and build version
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, coolcaresdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database, the token signer and an external code store. 503 when any of them fails
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	coolcaresdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer jwtx.Signer,
	codes Pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := &coolcaresdk.HealthChecks{
			Database:  probe(func() error { return st.Ping(ctx) }),
			Signer:    probe(func() error { return checkSigner(signer) }),
			CodeStore: "ok",
		}
		if codes != nil {
			checks.CodeStore = probe(func() error { return codes.Ping(ctx) })
		}

		resp := coolcaresdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		code := http.StatusOK
		for _, result := range []string{checks.Database, checks.Signer, checks.CodeStore} {
			if result != "ok" {
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		httpx.WriteJSON(w, code, resp)
	}
}

func probe(check func() error) string {
	if err := check(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func checkSigner(signer jwtx.Signer) error {
	if signer == nil {
		return errors.New("no signer configured")
	}
	return signer.Validate()
}

// HealthHandler godoc
//
//	@Summary		Server and database health
//	@Description	Kept for the worker app, which polls it. Always 200; status is "degraded" when the database is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.HealthResponse	"status, database"
//	@Router			/health [get].
func HealthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusOK, coolcaresdk.HealthResponse{Status: "degraded", Database: err.Error()})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, coolcaresdk.HealthResponse{Status: "ok", Database: "connected"})
	}
}
