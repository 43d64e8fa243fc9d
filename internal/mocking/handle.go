package mocking

import (
	"errors"
	"reflect"
	"sync"

	perr "ghappkit/internal/platform/errors"
)

// OutcomeKind says how an invocation was answered
type OutcomeKind uint8

// Outcome kinds
const (
	Hit OutcomeKind = iota + 1
	Default
	Fallback
	Missing
)

func (k OutcomeKind) String() string {
	switch k {
	case Hit:
		return "hit"
	case Default:
		return "default"
	case Fallback:
		return "fallback"
	case Missing:
		return "missing"
	default:
		return "none"
	}
}

// Outcome is the answer to one invocation
// Err carries a stubbed failure, an error from the real method, or a *MissingBehaviorError
type Outcome struct {
	Kind  OutcomeKind
	Value any
	Err   error

	target Identity
	method string
}

// RealFunc invokes the real method on the bound object with normalized arguments
type RealFunc func(Args) (any, error)

// Invocation is one recorded call
type Invocation struct {
	Target   Identity
	Method   string
	Args     []any
	Kind     OutcomeKind
	Stubbed  bool
	Verified bool
}

// Handle is the interceptable stand-in for one Identity
type Handle struct {
	id        Identity
	session   *Session
	derived   bool
	transport bool

	mu    sync.Mutex
	real  any
	stubs []*stub
	calls []*Invocation
}

// MockHandle implements Proxy
func (h *Handle) MockHandle() *Handle { return h }

// Identity returns the handle's identity
func (h *Handle) Identity() Identity { return h.id }

// Name returns the mock name used in diagnostics, e.g. GHIssue#750705278
func (h *Handle) Name() string { return h.id.String() }

// Session returns the owning session
func (h *Handle) Session() *Session { return h.session }

// Derived reports whether the handle was created by fallback rewrap rather than the registry
func (h *Handle) Derived() bool { return h.derived }

// Bind attaches the real object used for fallback
func (h *Handle) Bind(real any) {
	h.mu.Lock()
	h.real = real
	h.mu.Unlock()
}

// Real returns the bound real object, nil when none
func (h *Handle) Real() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.real
}

// Invocations returns a copy of the recorded calls
func (h *Handle) Invocations() []Invocation {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Invocation, len(h.calls))
	for i, c := range h.calls {
		out[i] = *c
		out[i].Args = append([]any(nil), c.Args...)
	}
	return out
}

// Invoke answers one call. args is the flat argument list (variadic elements expanded);
// real is called only on fallback and may be nil when the proxy cannot reach a real method
func (h *Handle) Invoke(m Method, args []any, real RealFunc) Outcome {
	phase := h.session.Phase()

	var out Outcome
	st := h.match(m.Name, args)
	switch {
	case st != nil:
		out = st.answer(h, m, args, real)
	case phase != Executing:
		out = Outcome{Kind: Default}
	default:
		out = h.fallback(m, args, real)
	}

	out.target, out.method = h.id, m.Name
	if phase == Executing {
		h.record(m, args, out, st != nil)
	}
	h.session.log.Debug().
		Stringer("target", h.id).
		Str("method", m.Name).
		Stringer("phase", phase).
		Stringer("outcome", out.Kind).
		Msg("invocation")
	return out
}

// match finds the last registered stub accepting args; derived handles also consult the
// registered handle of the same identity
func (h *Handle) match(method string, args []any) *stub {
	if st := h.ownMatch(method, args); st != nil {
		return st
	}
	if !h.derived {
		return nil
	}
	if reg, ok := h.session.Lookup(h.id); ok {
		return reg.ownMatch(method, args)
	}
	return nil
}

// ownMatch evaluates matchers outside the lock; a MatchedBy func may call back into h
func (h *Handle) ownMatch(method string, args []any) *stub {
	h.mu.Lock()
	stubs := append([]*stub(nil), h.stubs...)
	h.mu.Unlock()
	for i := len(stubs) - 1; i >= 0; i-- {
		if st := stubs[i]; st.method == method && matchAll(st.matchers, args) {
			return st
		}
	}
	return nil
}

func (h *Handle) snapshot() []*Invocation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Invocation(nil), h.calls...)
}

func (h *Handle) record(m Method, args []any, out Outcome, stubbed bool) {
	inv := &Invocation{
		Target:   h.id,
		Method:   m.Name,
		Args:     append([]any(nil), args...),
		Kind:     out.Kind,
		Stubbed:  stubbed,
		Verified: !stubbed && (out.Kind == Fallback || out.Kind == Missing),
	}
	h.mu.Lock()
	h.calls = append(h.calls, inv)
	h.mu.Unlock()
}

// fallback runs the real method and rewraps its result; see the package doc
func (h *Handle) fallback(m Method, args []any, real RealFunc) Outcome {
	if real == nil || h.Real() == nil {
		return h.missing(m, args, nil)
	}
	norm, err := Normalize(m, args)
	if err != nil {
		return Outcome{Kind: Fallback, Err: err}
	}

	v, err := callReal(real, norm)
	var mb *MissingBehaviorError
	if errors.As(err, &mb) {
		if mb.transport {
			// the real method needed the network; the call to stub is this one
			return h.missing(m, args, err)
		}
		return Outcome{Kind: Missing, Err: err}
	}
	if err != nil {
		return Outcome{Kind: Fallback, Value: v, Err: err}
	}
	return Outcome{Kind: Fallback, Value: h.session.rewrap(v)}
}

func (h *Handle) missing(m Method, args []any, cause error) Outcome {
	err := &MissingBehaviorError{
		Target:    h.id,
		Method:    m.Name,
		Args:      append([]any(nil), args...),
		transport: h.transport,
		cause:     cause,
	}
	return Outcome{Kind: Missing, Err: err}
}

// callReal converts a *MissingBehaviorError panic raised by a nested error-less proxy method
// back into an error; any other panic keeps unwinding
func callReal(real RealFunc, a Args) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			mb, ok := r.(*MissingBehaviorError)
			if !ok {
				panic(r)
			}
			err = mb
		}
	}()
	return real(a)
}

// Must extracts a T for methods without an error result; a failed outcome or a value of
// the wrong type panics with its error
func Must[T any](out Outcome) T {
	if out.Err != nil {
		panic(out.Err)
	}
	v, err := value[T](out)
	if err != nil {
		panic(err)
	}
	return v
}

// Result extracts (T, error) for methods with an error result
func Result[T any](out Outcome) (T, error) {
	v, err := value[T](out)
	if err != nil {
		return v, err
	}
	return v, out.Err
}

func value[T any](out Outcome) (T, error) {
	var zero T
	if out.Value == nil {
		return zero, nil
	}
	v, ok := out.Value.(T)
	if !ok {
		return zero, perr.InvalidArgf("%s.%s returns %s, got a %T", out.target, out.method, reflect.TypeFor[T](), out.Value)
	}
	return v, nil
}
