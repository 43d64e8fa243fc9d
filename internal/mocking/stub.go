package mocking

import (
	"sync"

	perr "ghappkit/internal/platform/errors"
)

type action func(h *Handle, m Method, args []any, real RealFunc) Outcome

type stub struct {
	method   string
	matchers []Matcher

	mu      sync.Mutex
	actions []action
	next    int
}

// answer runs the next action; the last one repeats once the sequence is used up
func (s *stub) answer(h *Handle, m Method, args []any, real RealFunc) Outcome {
	s.mu.Lock()
	a := s.actions[s.next]
	if s.next < len(s.actions)-1 {
		s.next++
	}
	s.mu.Unlock()
	return a(h, m, args, real)
}

// StubBuilder completes a stub started with Handle.On
type StubBuilder struct {
	h        *Handle
	method   string
	matchers []Matcher
}

// On starts a stub for method called with args; plain values match by equality
// Unknown methods and impossible arities panic, since the stub could never match
func (h *Handle) On(method string, args ...any) *StubBuilder {
	m, known, err := h.session.method(h.id.Type, method)
	if err != nil {
		panic(err)
	}
	if known && (!m.Variadic && len(args) != m.Params || m.Variadic && len(args) < m.Params-1) {
		panic(perr.InvalidArgf("%s.%s takes %d argument(s), stub has %d", h.id.Type, method, m.Params, len(args)))
	}
	return &StubBuilder{h: h, method: method, matchers: toMatchers(args)}
}

func (b *StubBuilder) add(actions ...action) {
	st := &stub{method: b.method, matchers: b.matchers, actions: actions}
	b.h.mu.Lock()
	b.h.stubs = append(b.h.stubs, st)
	b.h.mu.Unlock()
}

// Return answers with values in order, repeating the last; no values behaves like DoNothing
func (b *StubBuilder) Return(values ...any) {
	if len(values) == 0 {
		b.DoNothing()
		return
	}
	actions := make([]action, len(values))
	for i, v := range values {
		actions[i] = func(*Handle, Method, []any, RealFunc) Outcome { return Outcome{Kind: Hit, Value: v} }
	}
	b.add(actions...)
}

// DoNothing answers with the zero value and no error
func (b *StubBuilder) DoNothing() {
	b.add(func(*Handle, Method, []any, RealFunc) Outcome { return Outcome{Kind: Hit} })
}

// Fail answers with err
func (b *StubBuilder) Fail(err error) {
	b.add(func(*Handle, Method, []any, RealFunc) Outcome { return Outcome{Kind: Hit, Err: err} })
}

// CallReal delegates to the real method whatever the phase
func (b *StubBuilder) CallReal() {
	b.add(func(h *Handle, m Method, args []any, real RealFunc) Outcome { return h.fallback(m, args, real) })
}

// Run answers with fn, which receives the flat argument list
func (b *StubBuilder) Run(fn func(args []any) (any, error)) {
	b.add(func(_ *Handle, _ Method, args []any, _ RealFunc) Outcome {
		v, err := fn(args)
		return Outcome{Kind: Hit, Value: v, Err: err}
	})
}
