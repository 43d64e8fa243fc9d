// Package app routes decoded webhook events to the handlers of a GitHub app
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ghappkit/internal/configfile"
	"ghappkit/internal/event"
	"ghappkit/internal/gh"
	perr "ghappkit/internal/platform/errors"
	"ghappkit/internal/platform/logger"

	"github.com/google/uuid"
)

// AnyAction registers a handler for every action of an event kind
const AnyAction = ""

type route struct {
	kind   event.Kind
	action string
}

type handler struct {
	name string
	fn   func(*Context, event.Payload) error
}

// App is a set of event handlers plus the services they share
type App struct {
	name    string
	configs configfile.Provider

	mu     sync.RWMutex
	routes map[route][]handler
}

// Option configures an App
type Option func(*App)

// WithConfigProvider replaces the provider behind Context.ConfigFile
func WithConfigProvider(p configfile.Provider) Option {
	return func(a *App) { a.configs = p }
}

// New returns an App reading config files from the event repository
func New(name string, opts ...Option) *App {
	a := &App{name: name, configs: configfile.RepoProvider{}, routes: make(map[route][]handler)}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Name returns the app name
func (a *App) Name() string { return a.name }

// ConfigProvider returns the provider handlers read config files through
func (a *App) ConfigProvider() configfile.Provider { return a.configs }

// On registers h for kind events with action (AnyAction for all of them)
// The payload type P must match what event.Decode produces for kind
func On[P event.Payload](a *App, kind event.Kind, action string, h func(*Context, P) error) {
	name := fmt.Sprintf("%s.%s", kind, action)
	if action == AnyAction {
		name = string(kind)
	}
	fn := func(c *Context, p event.Payload) error {
		typed, ok := p.(P)
		if !ok {
			return perr.Payloadf("handler %s expects %T, got %T", name, *new(P), p)
		}
		return h(c, typed)
	}
	a.mu.Lock()
	r := route{kind: kind, action: action}
	a.routes[r] = append(a.routes[r], handler{name: name, fn: fn})
	a.mu.Unlock()
}

// Delivery is one event to dispatch
type Delivery struct {
	// ID is the X-GitHub-Delivery value; a random one is assigned when empty
	ID      string
	Payload event.Payload
	// Configs overrides the app config provider for this delivery
	Configs configfile.Provider
}

// Handlers reports how many handlers would receive an event with h
func (a *App) Handlers(h event.Header) int { return len(a.match(h)) }

func (a *App) match(h event.Header) []handler {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := append([]handler(nil), a.routes[route{kind: h.Kind, action: AnyAction}]...)
	if h.Action != AnyAction {
		out = append(out, a.routes[route{kind: h.Kind, action: h.Action}]...)
	}
	return out
}

// Dispatch runs every matching handler in registration order, generic ones first
// All handlers run; their errors are joined
func (a *App) Dispatch(ctx context.Context, d Delivery) error {
	if d.Payload == nil {
		return perr.Payloadf("delivery %s has no payload", d.ID)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if logger.DeliveryID(ctx) == "" {
		ctx = logger.WithDelivery(ctx, d.ID, "")
	}
	head := d.Payload.Head()
	log := logger.C(ctx).With().
		Str("app", a.name).
		Str("event", string(head.Kind)).
		Str("action", head.Action).
		Int64("installation_id", head.InstallationID).
		Logger()

	hs := a.match(head)
	if len(hs) == 0 {
		log.Debug().Msg("no handler for event")
		return nil
	}

	configs := a.configs
	if d.Configs != nil {
		configs = d.Configs
	}
	c := &Context{
		Context:        ctx,
		deliveryID:     d.ID,
		installationID: head.InstallationID,
		repo:           event.RepositoryOf(d.Payload),
		configs:        configs,
		log:            &log,
	}
	start := time.Now()
	var errs []error
	for _, h := range hs {
		if err := run(c, h, d.Payload); err != nil {
			log.Warn().Err(err).Str("handler", h.name).Msg("handler failed")
			errs = append(errs, err)
		}
	}
	log.Info().Int("handlers", len(hs)).Int("failed", len(errs)).Dur("took", time.Since(start)).Msg("event dispatched")
	return errors.Join(errs...)
}

// run calls one handler. Interceptable objects without an error result report missing
// behavior by panicking with a coded error; that panic becomes the handler's error
func run(c *Context, h handler, p event.Payload) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && perr.IsCode(e, perr.ErrorCodeMissingBehavior) {
			err = e
			return
		}
		panic(r)
	}()
	return h.fn(c, p)
}

// Context is what handlers receive: a context.Context scoped to one delivery plus
// access to the delivery metadata, a scoped logger and repository config files
type Context struct {
	context.Context

	deliveryID     string
	installationID int64
	repo           gh.Repository
	configs        configfile.Provider
	log            *logger.Logger
}

// DeliveryID returns the delivery being handled
func (c *Context) DeliveryID() string { return c.deliveryID }

// InstallationID returns the app installation the event was sent to, zero when absent
func (c *Context) InstallationID() int64 { return c.installationID }

// Log returns the delivery-scoped logger
func (c *Context) Log() *logger.Logger { return c.log }

// ConfigFile reads .github/<name> of the event repository into out (YAML or JSON by extension)
func (c *Context) ConfigFile(name string, out any) error {
	raw, err := c.configs.Fetch(c, c.repo, name)
	if err != nil {
		return err
	}
	return configfile.Decode(name, raw, out)
}
