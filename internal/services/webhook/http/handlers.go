// Package http provides the webhook endpoint
package http

import (
	"io"
	"net/http"

	perr "ghappkit/internal/platform/errors"
	phttp "ghappkit/internal/platform/net/http"
	str "ghappkit/internal/platform/strings"
	"ghappkit/internal/services/webhook/service"

	"github.com/google/uuid"
)

// Headers GitHub sets on every delivery
const (
	EventHeader    = "X-GitHub-Event"
	DeliveryHeader = "X-GitHub-Delivery"
)

// maxBody matches the GitHub payload cap
const maxBody = 25 << 20

type handlers struct {
	svc *service.Service
}

// Register mounts the webhook route at the router root
func Register(r phttp.Router, svc *service.Service) {
	h := &handlers{svc: svc}
	phttp.PostRaw(r, "/", h.deliver)
}

// deliver answers 202 for ignored events and 200 once every handler ran
//
// @Summary Receive a GitHub webhook delivery
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "event name"
// @Param X-GitHub-Delivery header string false "delivery id"
// @Success 200 {object} service.Result "every matching handler ran"
// @Success 202 {object} service.Result "event not handled by any app"
// @Failure 401 {object} phttp.Envelope "missing or invalid signature"
// @Failure 422 {object} phttp.Envelope "missing event header or undecodable payload"
// @Router /webhook/ [post]
func (h *handlers) deliver(r *http.Request) phttp.Response {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return phttp.Error(perr.Wrap(err, perr.ErrorCodePayload, "read body"))
	}
	if r.Header.Get(EventHeader) == "" {
		return phttp.Error(perr.InvalidArgf("missing %s header", EventHeader))
	}
	res, err := h.svc.Deliver(r.Context(), service.Delivery{
		ID:    str.IfBlank(r.Header.Get(DeliveryHeader), uuid.NewString()),
		Event: r.Header.Get(EventHeader),
		Body:  body,
	})
	if err != nil {
		return phttp.Error(err)
	}
	if res.Ignored {
		return phttp.Accepted(res)
	}
	return phttp.OK(res)
}
