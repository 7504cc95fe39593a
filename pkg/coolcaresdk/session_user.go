package coolcaresdk

import (
	"context"
	"net/http"
)

// Me returns the caller's profile.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe changes the caller's name and email.
func (s *Session) UpdateMe(ctx context.Context, req UpdateMeRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/auth/me", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// SubscribePush registers the browser push subscription for the caller.
func (s *Session) SubscribePush(ctx context.Context, req PushSubscribeRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/push/subscribe", req)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
