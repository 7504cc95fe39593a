package http

import (
	"net/http"

	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
)

type PushHandler struct {
	PushService *service.PushService
}

// HandleVAPIDPublic returns the application server key.
//
//	@Summary		VAPID public key
//	@Tags			Push
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.VAPIDPublicKeyResponse
//	@Failure		503	{object}	coolcaresdk.APIError	"Push notifications not configured"
//	@Router			/push/vapid-public [get].
func (h *PushHandler) HandleVAPIDPublic(w http.ResponseWriter, r *http.Request) {
	key, err := h.PushService.VAPIDPublicKey()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coolcaresdk.VAPIDPublicKeyResponse{VAPIDPublic: key})
}

// HandleSubscribe stores the caller's browser subscription.
//
//	@Summary		Subscribe to push
//	@Description	Saves the PushSubscription of the caller's browser, replacing an earlier one.
//	@Tags			Push
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.PushSubscribeRequest	true	"Browser subscription"
//	@Success		200		{object}	coolcaresdk.MessageResponse
//	@Failure		400		{object}	coolcaresdk.APIError
//	@Router			/push/subscribe [post].
func (h *PushHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req coolcaresdk.PushSubscribeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.PushService.Subscribe(r.Context(), userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coolcaresdk.MessageResponse{Status: "ok"})
}
