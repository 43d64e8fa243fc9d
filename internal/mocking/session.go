package mocking

import (
	"reflect"
	"sync"
	"sync/atomic"

	perr "ghappkit/internal/platform/errors"
	"ghappkit/internal/platform/logger"
)

// Session is the per-test registry of handles plus the phase they all read
type Session struct {
	catalog Catalog
	log     *logger.Logger
	phase   atomic.Int32

	mu      sync.Mutex
	handles map[Identity]*Handle
	order   []*Handle
}

// NewSession starts a session in the Configuring phase
func NewSession(c Catalog) *Session {
	return &Session{
		catalog: c,
		log:     logger.Named("mocking"),
		handles: make(map[Identity]*Handle),
	}
}

// Phase returns the current phase
func (s *Session) Phase() Phase { return Phase(s.phase.Load()) }

// Execute moves the session from Configuring to Executing
func (s *Session) Execute() error { return s.advance(Configuring, Executing) }

// Verify moves the session from Executing to Verifying
func (s *Session) Verify() error { return s.advance(Executing, Verifying) }

func (s *Session) advance(from, to Phase) error {
	if !s.phase.CompareAndSwap(int32(from), int32(to)) {
		return perr.Phasef("cannot enter %s phase from %s", to, s.Phase())
	}
	s.log.Debug().Stringer("phase", to).Msg("phase transition")
	return nil
}

// Resolve returns the handle registered for (typ, id), creating it on first use
func (s *Session) Resolve(typ string, id int64) *Handle {
	return s.resolve(Identity{Type: typ, ID: id}, false)
}

// Transport resolves a handle for a transport root such as the API client
// Missing behavior raised by a transport is re-attributed to the domain call that reached it
func (s *Session) Transport(typ string, id int64) *Handle {
	return s.resolve(Identity{Type: typ, ID: id}, true)
}

func (s *Session) resolve(id Identity, transport bool) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.handles[id]; ok {
		return h
	}
	h := &Handle{id: id, session: s, transport: transport}
	s.handles[id] = h
	s.order = append(s.order, h)
	s.log.Trace().Stringer("target", id).Msg("handle created")
	return h
}

// Lookup returns the registered handle for id without creating one
func (s *Session) Lookup(id Identity) (*Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[id]
	return h, ok
}

// Handles returns every registered handle in creation order
func (s *Session) Handles() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Handle(nil), s.order...)
}

// Objects returns the registered domain-object handles, transports excluded
func (s *Session) Objects() []*Handle {
	all := s.Handles()
	out := make([]*Handle, 0, len(all))
	for _, h := range all {
		if !h.transport {
			out = append(out, h)
		}
	}
	return out
}

// View returns the typed proxy for h
func (s *Session) View(h *Handle) any { return s.catalog.View(h) }

// Adopt binds a real domain object to its registered handle and returns the proxy
// Values the catalog does not recognize are returned unchanged
func (s *Session) Adopt(real any) any {
	id, ok := s.catalog.Identify(real)
	if !ok {
		return real
	}
	h := s.Resolve(id.Type, id.ID)
	h.Bind(real)
	return s.catalog.View(h)
}

// rewrap replaces domain objects in a fallback result, including inside slices of
// interfaces, with fresh unregistered proxies
func (s *Session) rewrap(v any) any {
	if v == nil {
		return nil
	}
	if _, ok := v.(Proxy); ok {
		return v
	}
	if id, ok := s.catalog.Identify(v); ok {
		h := &Handle{id: id, session: s, derived: true, real: v}
		s.log.Trace().Stringer("target", id).Msg("derived handle created")
		return s.catalog.View(h)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Interface || rv.IsNil() {
		return v
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	for i := range rv.Len() {
		el := rv.Index(i)
		if el.IsNil() {
			continue
		}
		out.Index(i).Set(reflect.ValueOf(s.rewrap(el.Interface())))
	}
	return out.Interface()
}

// method looks name up in the catalog; known is false when the catalog does not list typ
func (s *Session) method(typ, name string) (m Method, known bool, err error) {
	ms := s.catalog.Methods(typ)
	if ms == nil {
		return Method{Name: name}, false, nil
	}
	for _, m := range ms {
		if m.Name == name {
			return m, true, nil
		}
	}
	return Method{}, false, perr.InvalidArgf("%s has no method %s", typ, name)
}
