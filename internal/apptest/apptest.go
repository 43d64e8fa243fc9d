// Package apptest drives an app.App with webhook payloads against mocked GitHub objects.
//
// A test reads as given, when, then:
//
//	err := apptest.New(a).Given().
//		GitHub(func(mocks *apptest.Mocks) {
//			mocks.Issue(750705278).On("Body").Return("someValue")
//		}).
//		When().PayloadFromFile("issue-opened.json").
//		Event(event.KindIssues).
//		Then().GitHub(func(mocks *apptest.Mocks) error {
//			return mocks.Verify(mocks.Issue(750705278)).Called("AddLabels", "someValue")
//		})
//
// Given configures stubs, Event decodes the payload, swaps its objects for registered
// proxies and dispatches it, and Then verifies. Every chain starts a fresh session.
package apptest

import (
	"context"
	"os"
	"path/filepath"

	"ghappkit/internal/app"
	"ghappkit/internal/event"
	"ghappkit/internal/ghmock"
	"ghappkit/internal/mocking"
	"ghappkit/internal/platform/config"
	perr "ghappkit/internal/platform/errors"
	"ghappkit/internal/platform/logger"

	"github.com/google/uuid"
)

// Options configures a Harness; zero fields fall back to APPTEST_* env, then to defaults
type Options struct {
	InstallationID int64
	FixturesDir    string
	TestName       string
}

// OptionsFromEnv reads APPTEST_INSTALLATION_ID and APPTEST_FIXTURES_DIR
func OptionsFromEnv() Options {
	c := config.New().Prefix("APPTEST_")
	return Options{
		InstallationID: c.MayInt64("INSTALLATION_ID", 1),
		FixturesDir:    c.MayString("FIXTURES_DIR", "testdata"),
	}
}

// Option mutates Options
type Option func(*Options)

// WithInstallationID sets the installation the transport mock belongs to
func WithInstallationID(id int64) Option { return func(o *Options) { o.InstallationID = id } }

// WithFixturesDir sets where relative payload and config file paths are read from
func WithFixturesDir(dir string) Option { return func(o *Options) { o.FixturesDir = dir } }

// WithTestName tags every log line of a run with the test name
func WithTestName(name string) Option { return func(o *Options) { o.TestName = name } }

// Harness runs scenarios against one app
type Harness struct {
	app  *app.App
	opts Options
	log  *logger.Logger
}

// New returns a harness for a
func New(a *app.App, opts ...Option) *Harness {
	o := OptionsFromEnv()
	for _, fn := range opts {
		fn(&o)
	}
	return &Harness{app: a, opts: o, log: logger.Named("apptest")}
}

func (h *Harness) start() *run {
	s := ghmock.NewSession()
	return &run{h: h, session: s, mocks: newMocks(s, h.opts)}
}

// Given starts a scenario with a configuration step
func (h *Harness) Given() *Given { return &Given{r: h.start()} }

// When starts a scenario without stubs
func (h *Harness) When() *When { return &When{r: h.start()} }

// run is the state of one scenario
type run struct {
	h       *Harness
	session *mocking.Session
	mocks   *Mocks
	payload []byte
	err     error
}

func (r *run) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func fixturePath(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

// Given is the configuration step
type Given struct{ r *run }

// GitHub lets fn stub GitHub objects and config files
func (g *Given) GitHub(fn func(mocks *Mocks)) *Given {
	fn(g.r.mocks)
	return g
}

// When moves on to the payload
func (g *Given) When() *When { return &When{r: g.r} }

// When is the payload step
type When struct{ r *run }

// Payload sets the raw webhook body
func (w *When) Payload(raw []byte) *When {
	w.r.payload = raw
	return w
}

// PayloadFromString sets the webhook body from a string
func (w *When) PayloadFromString(s string) *When { return w.Payload([]byte(s)) }

// PayloadFromFile reads the webhook body from path, relative to the fixtures dir
func (w *When) PayloadFromFile(path string) *When {
	b, err := os.ReadFile(fixturePath(w.r.h.opts.FixturesDir, path))
	if err != nil {
		w.r.fail(perr.Wrapf(err, perr.ErrorCodePayload, "read payload %s", path))
	}
	return w.Payload(b)
}

// Event decodes the payload as kind and dispatches it to the app. Once dispatch has started
// the session is in the verifying phase when Event returns, whatever the handlers returned
func (w *When) Event(kind event.Kind) *Sent {
	r := w.r
	if r.err == nil {
		r.fail(r.mocks.err)
	}
	if r.err == nil {
		r.fail(r.dispatch(kind))
	}
	if r.session.Phase() == mocking.Executing {
		r.fail(r.session.Verify())
	}
	return &Sent{r: r}
}

func (r *run) dispatch(kind event.Kind) error {
	p, err := event.Decode(kind, r.payload, r.mocks.Client())
	if err != nil {
		return err
	}
	p.MapObjects(r.session.Adopt)

	if err := r.session.Execute(); err != nil {
		return err
	}
	id := uuid.NewString()
	ctx := logger.WithDelivery(context.Background(), id, r.h.opts.TestName)
	r.h.log.Debug().Str("delivery_id", id).Str("event", string(kind)).Str("test", r.h.opts.TestName).Msg("dispatching")
	return r.h.app.Dispatch(ctx, app.Delivery{ID: id, Payload: p, Configs: r.mocks.configs})
}

// Sent is the state after dispatch
type Sent struct{ r *run }

// Err returns the first error of the scenario so far: an unreadable payload, a failed
// decode, or the error the handlers returned
func (s *Sent) Err() error { return s.r.err }

// Then moves on to verification
func (s *Sent) Then() *Then { return &Then{r: s.r} }

// Then is the verification step
type Then struct{ r *run }

// GitHub returns the scenario error if there is one, otherwise runs fn in the verifying phase
func (t *Then) GitHub(fn func(mocks *Mocks) error) error {
	if t.r.err != nil {
		return t.r.err
	}
	return fn(t.r.mocks)
}
