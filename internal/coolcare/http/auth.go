package http

import (
	"errors"
	"net/http"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSendCode issues a verification code for a phone number.
//
//	@Summary		Send SMS code
//	@Description	Registers the phone on first contact and sends a 6-digit code valid for 10 minutes.
//	@Description	The code is echoed as debug_code when the server exposes debug codes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.SendCodeRequest		true	"Phone number"
//	@Success		200		{object}	coolcaresdk.SendCodeResponse	"Code sent"
//	@Failure		400		{object}	coolcaresdk.APIError			"Invalid phone"
//	@Failure		429		{object}	coolcaresdk.APIError			"Rate limited"
//	@Router			/auth/send-code [post].
func (h *AuthHandler) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	var req coolcaresdk.SendCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.AuthService.SendCode(r.Context(), req.Phone)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, coolcaresdk.SendCodeResponse{
		Message:   "SMS code sent",
		Phone:     res.Phone,
		DebugCode: res.DebugCode,
	})
}

// HandleVerifyCode exchanges a code for tokens.
//
//	@Summary		Verify SMS code
//	@Description	Consumes the code and returns an access/refresh token pair. A code works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.VerifyCodeRequest	true	"Phone and code"
//	@Success		200		{object}	coolcaresdk.TokenResponse		"Token pair"
//	@Failure		400		{object}	coolcaresdk.APIError			"Invalid or expired code"
//	@Failure		403		{object}	coolcaresdk.APIError			"User disabled"
//	@Failure		404		{object}	coolcaresdk.APIError			"User not found"
//	@Router			/auth/verify-code [post].
func (h *AuthHandler) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var req coolcaresdk.VerifyCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.AuthService.VerifyCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleRefresh mints a new access token.
//
//	@Summary		Refresh access token
//	@Description	Returns a new access token. The refresh token is returned unchanged.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	coolcaresdk.TokenResponse	"Token pair"
//	@Failure		401		{object}	coolcaresdk.APIError		"Invalid refresh token or unknown user"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req coolcaresdk.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if errors.Is(err, service.ErrUserNotFound) {
		coolcaresdk.ErrUserNotFoundAuth.WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleMe returns the caller.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.User
//	@Failure		401	{object}	coolcaresdk.APIError
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	u, err := h.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUpdateMe changes the caller's name or email.
//
//	@Summary		Update current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.UpdateMeRequest	true	"Fields to change"
//	@Success		200		{object}	coolcaresdk.User
//	@Failure		400		{object}	coolcaresdk.APIError
//	@Failure		401		{object}	coolcaresdk.APIError
//	@Router			/auth/me [put].
func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req coolcaresdk.UpdateMeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.AuthService.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

func tokenResponse(p domain.TokenPair) coolcaresdk.TokenResponse {
	return coolcaresdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
	}
}
