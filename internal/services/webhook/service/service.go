// Package service turns verified webhook deliveries into app dispatches
package service

import (
	"context"
	"errors"

	"ghappkit/internal/app"
	"ghappkit/internal/event"
	"ghappkit/internal/gh"
	perr "ghappkit/internal/platform/errors"
	"ghappkit/internal/platform/logger"
)

// Delivery is one webhook request
type Delivery struct {
	ID    string
	Event string
	Body  []byte
}

// Result describes what happened to a delivery
type Result struct {
	DeliveryID string `json:"delivery_id"`
	Event      string `json:"event"`
	Action     string `json:"action,omitempty"`
	Handlers   int    `json:"handlers"`
	Ignored    bool   `json:"ignored,omitempty"`
}

// Service decodes deliveries and dispatches them to every app
type Service struct {
	Apps      []*app.App
	Requester gh.Requester
}

// New constructs a webhook service; objects in decoded payloads call the API through r
func New(r gh.Requester, apps ...*app.App) *Service {
	return &Service{Apps: apps, Requester: r}
}

// Deliver dispatches d to every app; events of unsupported kinds are ignored, not rejected
func (s *Service) Deliver(ctx context.Context, d Delivery) (Result, error) {
	res := Result{DeliveryID: d.ID, Event: d.Event}
	log := logger.C(ctx).With().Str("delivery_id", d.ID).Str("event", d.Event).Logger()

	kind, err := event.ParseKind(d.Event)
	if err != nil {
		log.Debug().Msg("ignoring unsupported event")
		res.Ignored = true
		return res, nil
	}
	p, err := event.Decode(kind, d.Body, s.Requester)
	if err != nil {
		return res, perr.WithOp(err, "decode delivery")
	}
	head := p.Head()
	res.Action = head.Action

	ctx = logger.WithDelivery(ctx, d.ID, "")
	var errs []error
	for _, a := range s.Apps {
		n := a.Handlers(head)
		if n == 0 {
			continue
		}
		res.Handlers += n
		if err := a.Dispatch(ctx, app.Delivery{ID: d.ID, Payload: p}); err != nil {
			errs = append(errs, err)
		}
	}
	if res.Handlers == 0 {
		res.Ignored = true
	}
	if err := errors.Join(errs...); err != nil {
		log.Error().Err(err).Msg("delivery failed")
		return res, err
	}
	return res, nil
}
