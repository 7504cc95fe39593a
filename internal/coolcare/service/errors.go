package service

import "errors"

var (
	ErrInvalidPhone         = errors.New("invalid_phone")
	ErrInvalidOrExpiredCode = errors.New("invalid_or_expired_code")
	ErrInvalidToken         = errors.New("invalid_token")
	ErrUserNotFound         = errors.New("user_not_found")
	ErrUserDisabled         = errors.New("user_disabled")
	ErrJobNotFound          = errors.New("job_not_found")
	ErrInvalidDate          = errors.New("invalid_date")
	ErrPushNotConfigured    = errors.New("push_not_configured")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidRequest       = errors.New("invalid_request")
)
