package http

import (
	"errors"
	"net/http"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
	"github.com/coolcare/coolcare/pkg/slogx"
)

// writeServiceError maps service errors onto API errors. Anything unknown
// is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		coolcaresdk.ErrInvalidRequest.WithDetail(verr.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidPhone):
		coolcaresdk.ErrInvalidPhone.WriteError(w)
	case errors.Is(err, service.ErrInvalidOrExpiredCode):
		coolcaresdk.ErrInvalidCode.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		coolcaresdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		coolcaresdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrUserDisabled):
		coolcaresdk.ErrUserDisabled.WriteError(w)
	case errors.Is(err, service.ErrJobNotFound):
		coolcaresdk.ErrJobNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidDate):
		coolcaresdk.ErrInvalidRequest.WithDetail("Invalid date format, use YYYY-MM-DD").WriteError(w)
	case errors.Is(err, service.ErrPushNotConfigured):
		coolcaresdk.ErrPushNotConfigured.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		coolcaresdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrInvalidRequest):
		coolcaresdk.ErrInvalidRequest.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
		coolcaresdk.ErrServerError.WriteError(w)
	}
}

// decodeBody decodes a JSON body or writes invalid_request and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		coolcaresdk.ErrInvalidRequest.WithDetail(err.Error()).WriteError(w)
		return false
	}
	return true
}

// callerID returns the authenticated user or writes 401.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := httpx.UserIDFromContext(r.Context())
	if id == "" {
		coolcaresdk.ErrInvalidToken.WithDetail("could not validate credentials").WriteError(w)
		return "", false
	}
	return id, true
}

// queryAlias returns the first non-empty query parameter among names.
func queryAlias(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, n := range names {
		if v := q.Get(n); v != "" {
			return v
		}
	}
	return ""
}
