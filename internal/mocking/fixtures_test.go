package mocking_test

import (
	"context"
	"strings"

	"ghappkit/internal/mocking"
)

// A tiny closed catalog exercising every engine path: plain getters, domain results,
// slices of domain results, a variadic method, and a transport root.

type Widget interface {
	ID() int64
	Name() string
	Child(ctx context.Context) (Widget, error)
	Children(ctx context.Context) ([]Widget, error)
	Tag(ctx context.Context, prefix string, tags ...string) (string, error)
	Fetch(ctx context.Context) (string, error)
	Describe(ctx context.Context) (string, error)
}

type Transport interface {
	Request(ctx context.Context, path string) (string, error)
}

type realWidget struct {
	id   int64
	name string
	tr   Transport
	peer Widget
	tags *[][]string
}

func (w *realWidget) ID() int64    { return w.id }
func (w *realWidget) Name() string { return w.name }

func (w *realWidget) Child(context.Context) (Widget, error) {
	return &realWidget{id: w.id + 1, name: w.name + "/child", tr: w.tr}, nil
}

func (w *realWidget) Children(context.Context) ([]Widget, error) {
	return []Widget{
		&realWidget{id: w.id * 10, name: "a"},
		&realWidget{id: w.id*10 + 1, name: "b"},
	}, nil
}

func (w *realWidget) Tag(_ context.Context, prefix string, tags ...string) (string, error) {
	if w.tags != nil {
		*w.tags = append(*w.tags, tags)
	}
	return prefix + ":" + strings.Join(tags, ","), nil
}

func (w *realWidget) Fetch(ctx context.Context) (string, error) { return w.tr.Request(ctx, "/widgets") }

// Describe reads a peer through its error-less getter
func (w *realWidget) Describe(context.Context) (string, error) {
	return w.name + " next to " + w.peer.Name(), nil
}

var (
	mName     = mocking.Method{Name: "Name"}
	mChild    = mocking.Method{Name: "Child"}
	mChildren = mocking.Method{Name: "Children"}
	mTag      = mocking.Method{Name: "Tag", Params: 2, Variadic: true}
	mFetch    = mocking.Method{Name: "Fetch"}
	mDescribe = mocking.Method{Name: "Describe"}
	mRequest  = mocking.Method{Name: "Request", Params: 1}
)

type widgetProxy struct{ *mocking.Handle }

func (p widgetProxy) real() Widget { r, _ := p.Real().(Widget); return r }

func (p widgetProxy) ID() int64 { return p.Identity().ID }

func (p widgetProxy) Name() string {
	return mocking.Must[string](p.Invoke(mName, nil, func(mocking.Args) (any, error) { return p.real().Name(), nil }))
}

func (p widgetProxy) Child(ctx context.Context) (Widget, error) {
	return mocking.Result[Widget](p.Invoke(mChild, nil, func(mocking.Args) (any, error) { return p.real().Child(ctx) }))
}

func (p widgetProxy) Children(ctx context.Context) ([]Widget, error) {
	return mocking.Result[[]Widget](p.Invoke(mChildren, nil, func(mocking.Args) (any, error) { return p.real().Children(ctx) }))
}

func (p widgetProxy) Tag(ctx context.Context, prefix string, tags ...string) (string, error) {
	return mocking.Result[string](p.Invoke(mTag, mocking.Expand([]any{prefix}, tags), func(a mocking.Args) (any, error) {
		return p.real().Tag(ctx, mocking.Arg[string](a, 0), mocking.Seq[string](a.Rest)...)
	}))
}

func (p widgetProxy) Fetch(ctx context.Context) (string, error) {
	return mocking.Result[string](p.Invoke(mFetch, nil, func(mocking.Args) (any, error) { return p.real().Fetch(ctx) }))
}

func (p widgetProxy) Describe(ctx context.Context) (string, error) {
	return mocking.Result[string](p.Invoke(mDescribe, nil, func(mocking.Args) (any, error) { return p.real().Describe(ctx) }))
}

type transportProxy struct{ *mocking.Handle }

func (p transportProxy) Request(_ context.Context, path string) (string, error) {
	return mocking.Result[string](p.Invoke(mRequest, []any{path}, nil))
}

type catalog struct{}

func (catalog) Identify(v any) (mocking.Identity, bool) {
	if w, ok := v.(*realWidget); ok {
		return mocking.Identity{Type: "Widget", ID: w.id}, true
	}
	return mocking.Identity{}, false
}

func (catalog) View(h *mocking.Handle) any {
	if h.Identity().Type == "Transport" {
		return transportProxy{h}
	}
	return widgetProxy{h}
}

func (catalog) Methods(typ string) []mocking.Method {
	switch typ {
	case "Widget":
		return []mocking.Method{mName, mChild, mChildren, mTag, mFetch, mDescribe}
	case "Transport":
		return []mocking.Method{mRequest}
	}
	return nil
}

// world is one session with a transport and an adopted widget #1
type world struct {
	s      *mocking.Session
	tr     transportProxy
	w      Widget
	handle *mocking.Handle
	tags   [][]string
}

func newWorld() *world {
	wd := &world{s: mocking.NewSession(catalog{})}
	wd.tr = wd.s.View(wd.s.Transport("Transport", 1)).(transportProxy)
	wd.w = wd.s.Adopt(&realWidget{id: 1, name: "root", tr: wd.tr, tags: &wd.tags}).(Widget)
	wd.handle = wd.s.Resolve("Widget", 1)
	return wd
}
