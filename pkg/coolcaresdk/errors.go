package coolcaresdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coolcare/coolcare/pkg/httpx"
)

// Stable machine-readable error codes.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeInvalidPhone     = "invalid_phone"
	ErrorCodeInvalidCode      = "invalid_code"
	ErrorCodeInvalidToken     = "invalid_token"
	ErrorCodeUserNotFound     = "user_not_found"
	ErrorCodeUserDisabled     = "user_disabled"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeUnavailable      = "service_unavailable"
	ErrorCodeServerError      = "server_error"
	ErrorCodeRateLimited      = "rate_limit_exceeded"
	ErrorCodeMethodNotAllowed = "method_not_allowed"
)

// APIError is the JSON error body returned by every endpoint. The server
// writes it with WriteError and the client decodes it from failed responses.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// WithDetail returns a copy of e with detail replaced.
func (e *APIError) WithDetail(detail string) *APIError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// NewAPIError builds an APIError.
func NewAPIError(statusCode int, code, detail string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Detail: detail}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Detail:     "the request is malformed or missing required fields",
	}

	ErrInvalidPhone = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidPhone,
		Detail:     "invalid phone number",
	}

	// ErrInvalidCode covers unknown, wrong, reused and expired codes alike.
	ErrInvalidCode = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidCode,
		Detail:     "Invalid or expired code",
	}

	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Detail:     "Invalid refresh token",
	}

	// ErrUserNotFoundAuth is used where the token was valid but its subject
	// no longer exists.
	ErrUserNotFoundAuth = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUserNotFound,
		Detail:     "User not found",
	}

	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeUserNotFound,
		Detail:     "User not found",
	}

	ErrUserDisabled = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeUserDisabled,
		Detail:     "User is disabled",
	}

	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Detail:     "insufficient role",
	}

	ErrJobNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Detail:     "Job not found",
	}

	ErrPushNotConfigured = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       ErrorCodeUnavailable,
		Detail:     "Push notifications not configured",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Detail:     "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && (apiErr.Code != "" || apiErr.Detail != "") {
		apiErr.StatusCode = resp.StatusCode
		if apiErr.Code == "" {
			apiErr.Code = ErrorCodeServerError
		}
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
