package domain

import "time"

// Identity is what a verified access token says about its bearer.
type Identity struct {
	UserID string
	Phone  string
}

// TokenPair is the result of a successful sign-in or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}
