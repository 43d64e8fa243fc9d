// Package module wires the webhook endpoint into the server
package module

import (
	"net/http"

	"ghappkit/internal/app"
	"ghappkit/internal/gh"
	modkit "ghappkit/internal/modkit"
	phttp "ghappkit/internal/platform/net/http"
	"ghappkit/internal/platform/net/middleware"
	str "ghappkit/internal/platform/strings"

	webhookhttp "ghappkit/internal/services/webhook/http"
	"ghappkit/internal/services/webhook/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	svc *service.Service
}

// New constructs the webhook module. Deliveries are signature checked when
// secret is set, decoded with r, and dispatched to apps
func New(deps modkit.Deps, secret string, r gh.Requester, apps []*app.App, opts ...modkit.Option) modkit.Module {
	svc := service.New(r, apps...)

	mws := []func(http.Handler) http.Handler{middleware.AllowContentType("application/json")}
	if sig := service.NewSignature(secret); sig != nil {
		mws = append(mws, middleware.Auth(sig))
	} else {
		deps.Logger().Warn().Msg("webhook secret not set, deliveries are not verified")
	}

	opts = append([]modkit.Option{
		modkit.WithName("webhook"),
		modkit.WithPrefix("/webhook"),
		modkit.WithMiddlewares(mws...),
	}, opts...)
	b := modkit.Build(opts...)
	external := b.Register
	b.Register = func(r phttp.Router) {
		webhookhttp.Register(r, svc)
		external(r)
	}
	return &Module{b: b, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) { modkit.Mount(r, m.b) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "webhook") }
