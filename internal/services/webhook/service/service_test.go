package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ghappkit/internal/app"
	"ghappkit/internal/event"
	perr "ghappkit/internal/platform/errors"
	kit "ghappkit/internal/platform/testkit"
	"ghappkit/internal/services/webhook/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method, path string
	body         any
}

type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) Request(_ context.Context, method, path string, body any) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{method, path, body})
	return nil, nil
}

func labeller() *app.App {
	a := app.New("labeller")
	app.On(a, event.KindIssues, "opened", func(c *app.Context, p *event.Issues) error {
		return p.Issue.AddLabels(c, "triage/new")
	})
	return a
}

func TestDeliverDispatchesToEveryApp(t *testing.T) {
	rec := &recorder{}
	pinged := false
	other := app.New("pinger")
	app.On(other, event.KindPing, app.AnyAction, func(*app.Context, *event.Ping) error {
		pinged = true
		return nil
	})
	svc := service.New(rec, labeller(), other)

	res, err := svc.Deliver(context.Background(), service.Delivery{
		ID:    "d-1",
		Event: "issues",
		Body:  kit.Fixture(t, "issue-opened.json"),
	})
	require.NoError(t, err)
	assert.Equal(t, service.Result{DeliveryID: "d-1", Event: "issues", Action: "opened", Handlers: 1}, res)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, http.MethodPost, rec.calls[0].method)
	assert.Equal(t, "/repos/yrodiere/quarkus-github-playground/issues/1/labels", rec.calls[0].path)
	assert.False(t, pinged)

	res, err = svc.Deliver(context.Background(), service.Delivery{ID: "d-2", Event: "ping", Body: kit.Fixture(t, "ping.json")})
	require.NoError(t, err)
	assert.True(t, pinged)
	assert.Equal(t, 1, res.Handlers)
}

func TestDeliverIgnores(t *testing.T) {
	svc := service.New(&recorder{}, labeller())

	t.Run("unsupported event", func(t *testing.T) {
		res, err := svc.Deliver(context.Background(), service.Delivery{ID: "d", Event: "push", Body: []byte(`{}`)})
		require.NoError(t, err)
		assert.True(t, res.Ignored)
	})
	t.Run("no handler", func(t *testing.T) {
		res, err := svc.Deliver(context.Background(), service.Delivery{ID: "d", Event: "ping", Body: kit.Fixture(t, "ping.json")})
		require.NoError(t, err)
		assert.True(t, res.Ignored)
		assert.Zero(t, res.Handlers)
	})
}

func TestDeliverErrors(t *testing.T) {
	t.Run("undecodable payload", func(t *testing.T) {
		svc := service.New(&recorder{}, labeller())
		_, err := svc.Deliver(context.Background(), service.Delivery{ID: "d", Event: "issues", Body: []byte(`{"action":`)})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, perr.HTTPStatus(err))
	})
	t.Run("handler failure", func(t *testing.T) {
		a := app.New("failing")
		boom := errors.New("boom")
		app.On(a, event.KindIssues, app.AnyAction, func(*app.Context, *event.Issues) error { return boom })
		svc := service.New(&recorder{}, a)
		res, err := svc.Deliver(context.Background(), service.Delivery{ID: "d", Event: "issues", Body: kit.Fixture(t, "issue-opened.json")})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, res.Handlers)
	})
}

func TestSignature(t *testing.T) {
	assert.Nil(t, service.NewSignature(""))

	sig := service.NewSignature("It's a Secret to Everybody")
	body := []byte("Hello, World!")
	// documented GitHub example value
	want := "sha256=757107ea0eb2509fc211221cce984b8a37570b6d7586c22c46f4379c8b043e17"
	assert.Equal(t, want, sig.Sign(body))

	cases := []struct {
		name   string
		header string
		ok     bool
	}{
		{"valid", want, true},
		{"missing", "", false},
		{"sha1", "sha1=0123", false},
		{"not hex", "sha256=zz", false},
		{"mismatch", "sha256=757107ea0eb2509fc211221cce984b8a37570b6d7586c22c46f4379c8b043e18", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/webhook", nil)
			if c.header != "" {
				r.Header.Set(service.SignatureHeader, c.header)
			}
			err := sig.Verify(r, body)
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, perr.IsCode(err, perr.ErrorCodeUnauthorized), "got %v", err)
		})
	}
}
