package coolcaresdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the public endpoints and opens authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendCode asks the server to issue a verification code for phone.
func (c *Client) SendCode(ctx context.Context, phone string) (*SendCodeResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/send-code", SendCodeRequest{Phone: phone})
	if err != nil {
		return nil, err
	}

	var out SendCodeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCode exchanges a phone and code for a token pair.
func (c *Client) VerifyCode(ctx context.Context, phone, code string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/verify-code", VerifyCodeRequest{Phone: phone, Code: code})
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh mints a new access token. The returned refresh token is the one
// that was presented.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn verifies a code and returns a Session.
func (c *Client) SignIn(ctx context.Context, phone, code string) (*Session, error) {
	tokens, err := c.VerifyCode(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// NewSessionFromTokens resumes a session from stored tokens.
func (c *Client) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    expiresIn,
	})
}

// VAPIDPublicKey returns the server's Web Push application key.
func (c *Client) VAPIDPublicKey(ctx context.Context) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/push/vapid-public", nil)
	if err != nil {
		return "", err
	}

	var out VAPIDPublicKeyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.VAPIDPublic, nil
}
